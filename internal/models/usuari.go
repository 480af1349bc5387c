package models

import (
	"time"
)

type Usuari struct {
	ID        int64
	CreatedAt time.Time
	Nom       string
}
