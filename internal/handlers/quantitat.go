package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/handlers/render"
	"github.com/dualion/controldiners/internal/logger"
	"github.com/dualion/controldiners/internal/service/quantitat"
)

type quantitatRequest struct {
	ID        *int64          `json:"id"`
	Diners    decimal.Decimal `json:"diners" validate:"gt=0,lt=10000000000,decimals=2"`
	DataInici *time.Time      `json:"dataInici"`
	DataFi    *time.Time      `json:"dataFi"`
}

func (req quantitatRequest) params() quantitat.Params {
	p := quantitat.Params{Diners: req.Diners, DataFi: req.DataFi}
	if req.DataInici != nil {
		p.DataInici = *req.DataInici
	}
	return p
}

// renderQuantitatError renders errors common for quantitat create and update
func renderQuantitatError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, quantitat.ErrNotPositive):
		render.Failure(w, entityQuantitat, "dinersinvalid", "Diners must be positive", http.StatusBadRequest)
	case errors.Is(err, quantitat.ErrTooManyDecimals):
		render.Failure(w, entityQuantitat, "dinersinvalid", "Diners can not have more than 2 decimal places", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrQuantitatOutOfRange):
		render.Failure(w, entityQuantitat, "dinersinvalid", "Diners are too large", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrQuantitatInvalidPeriod):
		render.Failure(w, entityQuantitat, "periodinvalid", "Quantitat has to end after it starts", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrQuantitatNotFound):
		render.ServiceError(w, "Quantitat not found", http.StatusNotFound)
	default:
		l.Error("Failed to save quantitat", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func createQuantitat(w http.ResponseWriter, r *http.Request, quantitatService quantitatService, l logger.Logger, req quantitatRequest) {
	q, err := quantitatService.Create(r.Context(), req.params())
	if err != nil {
		renderQuantitatError(w, l, err)
		return
	}

	created(w, "/api/quantitats", entityQuantitat, q.ID, newQuantitatResponse(q))
}

func handleCreateQuantitat(quantitatService quantitatService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[quantitatRequest](w, r)
		if err != nil {
			return
		}

		if req.ID != nil {
			render.Failure(w, entityQuantitat, "idexists", "A new quantitat cannot already have an ID", http.StatusBadRequest)
			return
		}

		createQuantitat(w, r, quantitatService, l, req)
	})
}

// Quantitat without id is created
func handleUpdateQuantitat(quantitatService quantitatService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[quantitatRequest](w, r)
		if err != nil {
			return
		}

		if req.ID == nil {
			createQuantitat(w, r, quantitatService, l, req)
			return
		}

		q, err := quantitatService.Update(r.Context(), *req.ID, req.params())
		if err != nil {
			renderQuantitatError(w, l, err)
			return
		}

		render.EntityUpdated(w, entityQuantitat, q.ID)
		render.JSON(w, newQuantitatResponse(q))
	})
}

func handleListQuantitats(quantitatService quantitatService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageRequest, ok := render.PageRequestOrError(w, r)
		if !ok {
			return
		}

		page, err := quantitatService.FindAll(r.Context(), pageRequest)
		if err != nil {
			l.Error("Failed to list quantitats", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		renderPage(w, r, page, newQuantitatResponse)
	})
}

func handleGetQuantitat(quantitatService quantitatService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		q, err := quantitatService.FindOne(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newQuantitatResponse(q))
		case errors.Is(err, apperrors.ErrQuantitatNotFound):
			render.ServiceError(w, "Quantitat not found", http.StatusNotFound)
		default:
			l.Error("Failed to get quantitat", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

// Quantitat a new proces would be seeded with
func handleCurrentQuantitat(quantitatService quantitatService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := quantitatService.Current(r.Context())

		switch {
		case err == nil:
			render.JSON(w, newQuantitatResponse(q))
		case errors.Is(err, apperrors.ErrNoQuantitatConfigured):
			render.Failure(w, entityQuantitat, "quantitatactive", "There is no quantitat in effect", http.StatusNotFound)
		default:
			l.Error("Failed to get current quantitat", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeleteQuantitat(quantitatService quantitatService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		err := quantitatService.Delete(r.Context(), id)

		switch {
		case err == nil:
			render.EntityDeleted(w, entityQuantitat, id)
			w.WriteHeader(http.StatusOK)
		case errors.Is(err, apperrors.ErrQuantitatNotFound):
			render.ServiceError(w, "Quantitat not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrQuantitatInUse):
			render.Failure(w, entityQuantitat, "quantitatinuse", "Quantitat is used by some proces", http.StatusBadRequest)
		default:
			l.Error("Failed to delete quantitat", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
