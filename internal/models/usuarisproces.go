package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsuarisProces is the ledger line of one user inside one proces
type UsuarisProces struct {
	ID           int64
	Diners       decimal.Decimal
	Pagat        bool
	DataPagament *time.Time // nil if not paid
	ProcesID     int64
	UsuarisID    int64
	UsuarisNom   string // copy of the user name, kept in sync on rename
}
