package handlers

import (
	"errors"
	"net/http"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/handlers/render"
	"github.com/dualion/controldiners/internal/logger"
	"github.com/dualion/controldiners/internal/service/usuari"
)

type usuariRequest struct {
	Nom string `json:"nom" validate:"required,notblank,max=100"`
}

func renderUsuariError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, usuari.ErrEmptyNom):
		render.Failure(w, entityUsuari, "nominvalid", "Nom is required", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrUsuariAlreadyExists):
		render.Failure(w, entityUsuari, "usuariexists", "Usuari with the same nom already exists", http.StatusConflict)
	case errors.Is(err, apperrors.ErrUsuariNotFound):
		render.ServiceError(w, "Usuari not found", http.StatusNotFound)
	default:
		l.Error("Failed to save usuari", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func handleCreateUsuari(usuariService usuariService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[usuariRequest](w, r)
		if err != nil {
			return
		}

		u, err := usuariService.Create(r.Context(), req.Nom)
		if err != nil {
			renderUsuariError(w, l, err)
			return
		}

		created(w, "/api/usuaris", entityUsuari, u.ID, newUsuariResponse(u))
	})
}

func handleRenameUsuari(usuariService usuariService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[usuariRequest](w, r)
		if err != nil {
			return
		}

		u, err := usuariService.Rename(r.Context(), id, req.Nom)
		if err != nil {
			renderUsuariError(w, l, err)
			return
		}

		render.EntityUpdated(w, entityUsuari, u.ID)
		render.JSON(w, newUsuariResponse(u))
	})
}

func handleListUsuaris(usuariService usuariService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageRequest, ok := render.PageRequestOrError(w, r)
		if !ok {
			return
		}

		page, err := usuariService.FindAll(r.Context(), pageRequest)
		if err != nil {
			l.Error("Failed to list usuaris", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		renderPage(w, r, page, newUsuariResponse)
	})
}

func handleGetUsuari(usuariService usuariService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		u, err := usuariService.FindOne(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newUsuariResponse(u))
		case errors.Is(err, apperrors.ErrUsuariNotFound):
			render.ServiceError(w, "Usuari not found", http.StatusNotFound)
		default:
			l.Error("Failed to get usuari", "error", err, "id", id)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
