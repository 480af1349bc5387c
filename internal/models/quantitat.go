package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Quantitat struct {
	ID        int64
	Diners    decimal.Decimal
	DataInici time.Time
	DataFi    *time.Time // nil means valid with no end
}
