package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dualion/controldiners/internal/handlers/render"
	"github.com/dualion/controldiners/internal/models"
)

// Entity names used in alert headers
const (
	entityProces        = "proces"
	entityQuantitat     = "quantitat"
	entityUsuari        = "usuari"
	entityUsuarisProces = "usuarisProces"
)

type procesResponse struct {
	ID          int64      `json:"id"`
	Actiu       bool       `json:"actiu"`
	DataInici   time.Time  `json:"dataInici"`
	DataFi      *time.Time `json:"dataFi"`
	QuantitatID int64      `json:"quantitatId"`
	Diners      float64    `json:"diners"`
}

type quantitatResponse struct {
	ID        int64      `json:"id"`
	Diners    float64    `json:"diners"`
	DataInici time.Time  `json:"dataInici"`
	DataFi    *time.Time `json:"dataFi"`
}

type usuariResponse struct {
	ID        int64     `json:"id"`
	Nom       string    `json:"nom"`
	CreatedAt time.Time `json:"createdAt"`
}

type usuarisProcesResponse struct {
	ID           int64      `json:"id"`
	Diners       float64    `json:"diners"`
	Pagat        bool       `json:"pagat"`
	DataPagament *time.Time `json:"dataPagament"`
	ProcesID     int64      `json:"procesId"`
	UsuarisID    int64      `json:"usuarisId"`
	UsuarisNom   string     `json:"usuarisNom"`
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func newProcesResponse(p models.Proces) procesResponse {
	return procesResponse{
		ID:          p.ID,
		Actiu:       p.Actiu,
		DataInici:   p.DataInici,
		DataFi:      p.DataFi,
		QuantitatID: p.QuantitatID,
		Diners:      toFloat(p.Diners),
	}
}

func newQuantitatResponse(q models.Quantitat) quantitatResponse {
	return quantitatResponse{
		ID:        q.ID,
		Diners:    toFloat(q.Diners),
		DataInici: q.DataInici,
		DataFi:    q.DataFi,
	}
}

func newUsuariResponse(u models.Usuari) usuariResponse {
	return usuariResponse{
		ID:        u.ID,
		Nom:       u.Nom,
		CreatedAt: u.CreatedAt,
	}
}

func newUsuarisProcesResponse(up models.UsuarisProces) usuarisProcesResponse {
	return usuarisProcesResponse{
		ID:           up.ID,
		Diners:       toFloat(up.Diners),
		Pagat:        up.Pagat,
		DataPagament: up.DataPagament,
		ProcesID:     up.ProcesID,
		UsuarisID:    up.UsuarisID,
		UsuarisNom:   up.UsuarisNom,
	}
}

func mapSlice[T any, R any](items []T, fn func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}

// renderPage renders page items with pagination headers
func renderPage[T any, R any](w http.ResponseWriter, r *http.Request, page models.Page[T], fn func(T) R) {
	render.PaginationHeaders(w, r.URL, page)
	render.JSON(w, mapSlice(page.Items, fn))
}

// pathID parses '{id}' path value, renders bad request if it is not valid
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		render.ServiceError(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// created renders 201 with Location header and entity created alert
func created(w http.ResponseWriter, location string, entity string, id int64, data any) {
	w.Header().Set("Location", location+"/"+strconv.FormatInt(id, 10))
	render.EntityCreated(w, entity, id)
	render.JSONWithStatus(w, data, http.StatusCreated)
}
