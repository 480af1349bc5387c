package usuari

import (
	"context"
	"errors"
	"strings"

	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/repository"
)

var ErrEmptyNom = errors.New("usuari nom is empty")

type UsuariService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *UsuariService {
	return &UsuariService{storage: storage}
}

// Create returns apperrors.ErrUsuariAlreadyExists if the name is taken
// The usuari joins the next proces, the active one is left as is
func (s *UsuariService) Create(ctx context.Context, nom string) (models.Usuari, error) {
	nom = strings.TrimSpace(nom)
	if nom == "" {
		return models.Usuari{}, ErrEmptyNom
	}

	return s.storage.Usuari().CreateUsuari(ctx, nom)
}

// Rename usuari and every ledger line that carries the usuari name
func (s *UsuariService) Rename(ctx context.Context, id int64, nom string) (models.Usuari, error) {
	var u models.Usuari

	nom = strings.TrimSpace(nom)
	if nom == "" {
		return u, ErrEmptyNom
	}

	err := s.storage.InTx(ctx, func(tx repository.Storage) error {
		var err error
		u, err = tx.Usuari().RenameUsuari(ctx, id, nom)
		if err != nil {
			return err
		}

		return tx.UsuarisProces().RenameUsuari(ctx, id, nom)
	})

	return u, err
}

func (s *UsuariService) FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.Usuari], error) {
	return s.storage.Usuari().ListUsuaris(ctx, page)
}

func (s *UsuariService) FindOne(ctx context.Context, id int64) (models.Usuari, error) {
	return s.storage.Usuari().GetUsuari(ctx, id)
}
