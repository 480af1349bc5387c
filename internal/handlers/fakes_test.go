package handlers

import (
	"context"

	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/service/quantitat"
)

type fakeProcesService struct {
	create     func() (models.Proces, error)
	terminate  func() (models.Proces, error)
	findActive func() (bool, error)
	findAll    func(page models.PageRequest) (models.Page[models.Proces], error)
	findOne    func(id int64) (models.Proces, error)
}

func (f *fakeProcesService) Create(_ context.Context) (models.Proces, error) { return f.create() }

func (f *fakeProcesService) Terminate(_ context.Context) (models.Proces, error) { return f.terminate() }

func (f *fakeProcesService) FindActive(_ context.Context) (bool, error) { return f.findActive() }

func (f *fakeProcesService) FindAll(_ context.Context, page models.PageRequest) (models.Page[models.Proces], error) {
	return f.findAll(page)
}

func (f *fakeProcesService) FindOne(_ context.Context, id int64) (models.Proces, error) {
	return f.findOne(id)
}

type fakeQuantitatService struct {
	create  func(p quantitat.Params) (models.Quantitat, error)
	update  func(id int64, p quantitat.Params) (models.Quantitat, error)
	findAll func(page models.PageRequest) (models.Page[models.Quantitat], error)
	findOne func(id int64) (models.Quantitat, error)
	delete  func(id int64) error
	current func() (models.Quantitat, error)
}

func (f *fakeQuantitatService) Create(_ context.Context, p quantitat.Params) (models.Quantitat, error) {
	return f.create(p)
}

func (f *fakeQuantitatService) Update(_ context.Context, id int64, p quantitat.Params) (models.Quantitat, error) {
	return f.update(id, p)
}

func (f *fakeQuantitatService) FindAll(_ context.Context, page models.PageRequest) (models.Page[models.Quantitat], error) {
	return f.findAll(page)
}

func (f *fakeQuantitatService) FindOne(_ context.Context, id int64) (models.Quantitat, error) {
	return f.findOne(id)
}

func (f *fakeQuantitatService) Delete(_ context.Context, id int64) error { return f.delete(id) }

func (f *fakeQuantitatService) Current(context.Context) (models.Quantitat, error) { return f.current() }

type fakeUsuariService struct {
	create  func(nom string) (models.Usuari, error)
	rename  func(id int64, nom string) (models.Usuari, error)
	findAll func(page models.PageRequest) (models.Page[models.Usuari], error)
	findOne func(id int64) (models.Usuari, error)
}

func (f *fakeUsuariService) Create(_ context.Context, nom string) (models.Usuari, error) {
	return f.create(nom)
}

func (f *fakeUsuariService) Rename(_ context.Context, id int64, nom string) (models.Usuari, error) {
	return f.rename(id, nom)
}

func (f *fakeUsuariService) FindAll(_ context.Context, page models.PageRequest) (models.Page[models.Usuari], error) {
	return f.findAll(page)
}

func (f *fakeUsuariService) FindOne(_ context.Context, id int64) (models.Usuari, error) {
	return f.findOne(id)
}

type fakeUsuarisProcesService struct {
	listByProces func(procesID int64) ([]models.UsuarisProces, error)
	findOne      func(id int64) (models.UsuarisProces, error)
	markPaid     func(id int64) (models.UsuarisProces, error)
}

func (f *fakeUsuarisProcesService) ListByProces(_ context.Context, procesID int64) ([]models.UsuarisProces, error) {
	return f.listByProces(procesID)
}

func (f *fakeUsuarisProcesService) FindOne(_ context.Context, id int64) (models.UsuarisProces, error) {
	return f.findOne(id)
}

func (f *fakeUsuarisProcesService) MarkPaid(_ context.Context, id int64) (models.UsuarisProces, error) {
	return f.markPaid(id)
}
