package handlers

import (
	"errors"
	"net/http"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/handlers/render"
	"github.com/dualion/controldiners/internal/logger"
	"github.com/dualion/controldiners/internal/service/proces"
)

func handleCreateProces(procesService procesService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := procesService.Create(r.Context())

		switch {
		case err == nil:
			created(w, "/api/proces", entityProces, p.ID, newProcesResponse(p))
		case errors.Is(err, apperrors.ErrProcesAlreadyActive):
			l.Warn("Proces not created", "error", err)
			render.Failure(w, entityProces, "procesactive", "There is an active proces already", http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrNoQuantitatConfigured):
			l.Warn("Proces not created", "error", err)
			render.Failure(w, entityQuantitat, "quantitatactive", "There is no quantitat in effect", http.StatusBadRequest)
		default:
			l.Error("Failed to create proces", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleTerminateProces(procesService procesService, l logger.Logger) http.Handler {
	type unpaidUsuari struct {
		ID         int64  `json:"id"`
		UsuarisID  int64  `json:"usuarisId"`
		UsuarisNom string `json:"usuarisNom"`
	}
	type unpaidDetails struct {
		Count   int            `json:"count"`
		Usuaris []unpaidUsuari `json:"usuaris"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := procesService.Terminate(r.Context())

		var unpaidErr *proces.UnpaidUsersError

		switch {
		case err == nil:
			created(w, "/api/proces", entityProces, p.ID, newProcesResponse(p))
		case errors.As(err, &unpaidErr):
			l.Warn("Proces not terminated", "error", err)
			details := unpaidDetails{Count: len(unpaidErr.Unpaid), Usuaris: make([]unpaidUsuari, 0, len(unpaidErr.Unpaid))}
			for _, up := range unpaidErr.Unpaid {
				details.Usuaris = append(details.Usuaris, unpaidUsuari{ID: up.ID, UsuarisID: up.UsuarisID, UsuarisNom: up.UsuarisNom})
			}
			render.FailureAlert(w, entityProces, "usuarisnopagats")
			render.ServiceErrorWithDetails(w, "Some usuaris have not paid yet", details, http.StatusNotFound)
		case errors.Is(err, apperrors.ErrNoActiveProces):
			l.Warn("Proces not terminated", "error", err)
			render.Failure(w, entityProces, "procesinactiu", "There is no active proces", http.StatusNotFound)
		default:
			l.Error("Failed to terminate proces", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListProces(procesService procesService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageRequest, ok := render.PageRequestOrError(w, r)
		if !ok {
			return
		}

		page, err := procesService.FindAll(r.Context(), pageRequest)
		if err != nil {
			l.Error("Failed to list proces", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		renderPage(w, r, page, newProcesResponse)
	})
}

func handleGetProces(procesService procesService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		p, err := procesService.FindOne(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newProcesResponse(p))
		case errors.Is(err, apperrors.ErrProcesNotFound):
			render.ServiceError(w, "Proces not found", http.StatusNotFound)
		default:
			l.Error("Failed to get proces", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleActiveProces(procesService procesService, l logger.Logger) http.Handler {
	type response struct {
		Actiu bool `json:"actiu"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		active, err := procesService.FindActive(r.Context())
		if err != nil {
			l.Error("Failed to check active proces", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{Actiu: active})
	})
}

func handleListProcesUsuaris(usuarisProcesService usuarisProcesService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		lines, err := usuarisProcesService.ListByProces(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, mapSlice(lines, newUsuarisProcesResponse))
		case errors.Is(err, apperrors.ErrProcesNotFound):
			render.ServiceError(w, "Proces not found", http.StatusNotFound)
		default:
			l.Error("Failed to list proces usuaris", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
