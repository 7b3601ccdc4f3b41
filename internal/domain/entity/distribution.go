package entity

import (
	"strings"
	"time"
)

// WorkerIdentity identifica a un trabajador de campo por texto libre.
// Dos identidades son el mismo trabajador solo si el nombre coincide exactamente.
type WorkerIdentity struct {
	Name   string
	Gender string // opcional en el servidor
	Mobile string // opcional
}

// Distribution registro inmutable: una cantidad de un producto entregada a un trabajador.
type Distribution struct {
	ID                  string
	CompanyID           string
	ProductID           string
	Worker              WorkerIdentity
	Quantity            int64
	DistributedByUserID string
	DistributedAt       time.Time
}

// NullableString convierte "" (tras recortar espacios) en nil para columnas opcionales.
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringOrEmpty es la inversa de NullableString.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
