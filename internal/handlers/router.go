package handlers

import (
	"context"
	"net/http"

	"github.com/dualion/controldiners/internal/handlers/middleware"
	"github.com/dualion/controldiners/internal/logger"
	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/service/quantitat"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

type Services struct {
	Proces        procesService
	Quantitat     quantitatService
	Usuari        usuariService
	UsuarisProces usuarisProcesService
}

func NewRouter(s Services, metrics *middleware.Metrics, logger logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/proces", handleCreateProces(s.Proces, logger))
	mux.Handle("POST /api/proces/terminate", handleTerminateProces(s.Proces, logger))
	mux.Handle("GET /public/proces", handleListProces(s.Proces, logger))
	mux.Handle("GET /public/proces/actiu", handleActiveProces(s.Proces, logger))
	mux.Handle("GET /public/proces/{id}", handleGetProces(s.Proces, logger))
	mux.Handle("GET /public/proces/{id}/usuaris", handleListProcesUsuaris(s.UsuarisProces, logger))

	mux.Handle("POST /api/quantitats", handleCreateQuantitat(s.Quantitat, logger))
	mux.Handle("PUT /api/quantitats", handleUpdateQuantitat(s.Quantitat, logger))
	mux.Handle("GET /api/quantitats", handleListQuantitats(s.Quantitat, logger))
	mux.Handle("GET /api/quantitats/actual", handleCurrentQuantitat(s.Quantitat, logger))
	mux.Handle("GET /api/quantitats/{id}", handleGetQuantitat(s.Quantitat, logger))
	mux.Handle("DELETE /api/quantitats/{id}", handleDeleteQuantitat(s.Quantitat, logger))

	mux.Handle("POST /api/usuaris", handleCreateUsuari(s.Usuari, logger))
	mux.Handle("GET /api/usuaris", handleListUsuaris(s.Usuari, logger))
	mux.Handle("GET /api/usuaris/{id}", handleGetUsuari(s.Usuari, logger))
	mux.Handle("PUT /api/usuaris/{id}", handleRenameUsuari(s.Usuari, logger))

	mux.Handle("GET /api/usuaris-proces/{id}", handleGetUsuarisProces(s.UsuarisProces, logger))
	mux.Handle("POST /api/usuaris-proces/{id}/pagar", handlePayUsuarisProces(s.UsuarisProces, logger))

	mux.Handle("GET /metrics", metrics.Handler())

	handler := chain(mux,
		middleware.LoggerMiddleware(logger),
		metrics.Middleware,
	)

	return handler
}

type procesService interface {
	// Create new active proces
	// Has to return apperrors.ErrProcesAlreadyActive if some proces is active
	// Has to return apperrors.ErrNoQuantitatConfigured if there is no quantitat to seed proces with
	Create(ctx context.Context) (models.Proces, error)

	// Terminate the active proces
	// Has to return apperrors.ErrNoActiveProces if there is nothing to terminate
	// Has to return *proces.UnpaidUsersError if some usuari has not paid
	Terminate(ctx context.Context) (models.Proces, error)

	FindActive(ctx context.Context) (bool, error)
	FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.Proces], error)

	// Has to return apperrors.ErrProcesNotFound if not found
	FindOne(ctx context.Context, id int64) (models.Proces, error)
}

type quantitatService interface {
	Create(ctx context.Context, p quantitat.Params) (models.Quantitat, error)

	// Has to return apperrors.ErrQuantitatNotFound if not found
	Update(ctx context.Context, id int64, p quantitat.Params) (models.Quantitat, error)

	FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.Quantitat], error)
	FindOne(ctx context.Context, id int64) (models.Quantitat, error)

	// Has to return apperrors.ErrQuantitatInUse if some proces references the quantitat
	Delete(ctx context.Context, id int64) error

	// Has to return apperrors.ErrNoQuantitatConfigured if no quantitat is in effect now
	Current(ctx context.Context) (models.Quantitat, error)
}

type usuariService interface {
	// Has to return apperrors.ErrUsuariAlreadyExists if the name is taken
	Create(ctx context.Context, nom string) (models.Usuari, error)
	Rename(ctx context.Context, id int64, nom string) (models.Usuari, error)
	FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.Usuari], error)
	FindOne(ctx context.Context, id int64) (models.Usuari, error)
}

type usuarisProcesService interface {
	// Has to return apperrors.ErrProcesNotFound for unknown proces
	ListByProces(ctx context.Context, procesID int64) ([]models.UsuarisProces, error)
	FindOne(ctx context.Context, id int64) (models.UsuarisProces, error)

	// Has to return apperrors.ErrProcesInactive if the line belongs to terminated proces
	MarkPaid(ctx context.Context, id int64) (models.UsuarisProces, error)
}
