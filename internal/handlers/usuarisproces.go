package handlers

import (
	"errors"
	"net/http"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/handlers/render"
	"github.com/dualion/controldiners/internal/logger"
)

func handleGetUsuarisProces(usuarisProcesService usuarisProcesService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		up, err := usuarisProcesService.FindOne(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newUsuarisProcesResponse(up))
		case errors.Is(err, apperrors.ErrUsuarisProcesNotFound):
			render.ServiceError(w, "Usuaris proces not found", http.StatusNotFound)
		default:
			l.Error("Failed to get usuaris proces", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handlePayUsuarisProces(usuarisProcesService usuarisProcesService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		up, err := usuarisProcesService.MarkPaid(r.Context(), id)

		switch {
		case err == nil:
			render.EntityUpdated(w, entityUsuarisProces, up.ID)
			render.JSON(w, newUsuarisProcesResponse(up))
		case errors.Is(err, apperrors.ErrUsuarisProcesNotFound):
			render.ServiceError(w, "Usuaris proces not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrProcesInactive):
			render.Failure(w, entityUsuarisProces, "procesinactiu", "Proces is already terminated", http.StatusBadRequest)
		default:
			l.Error("Failed to pay usuaris proces", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
