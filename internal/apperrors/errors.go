package apperrors

import (
	"errors"
)

var (
	ErrProcesAlreadyActive = errors.New("an active proces already exists")
	ErrNoActiveProces      = errors.New("there is no active proces")
	ErrProcesNotFound      = errors.New("proces not found")
	ErrProcesInactive      = errors.New("proces is not active")
	ErrUnpaidUsers         = errors.New("there are users who have not paid")

	ErrNoQuantitatConfigured  = errors.New("no quantitat configured")
	ErrQuantitatNotFound      = errors.New("quantitat not found")
	ErrQuantitatInUse         = errors.New("quantitat is referenced by a proces")
	ErrQuantitatInvalidPeriod = errors.New("quantitat period ends before it starts")
	ErrQuantitatOutOfRange    = errors.New("quantitat diners out of range")

	ErrUsuariAlreadyExists = errors.New("usuari already exists")
	ErrUsuariNotFound      = errors.New("usuari not found")

	ErrUsuarisProcesNotFound = errors.New("usuaris proces not found")
)
