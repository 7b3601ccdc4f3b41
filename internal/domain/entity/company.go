package entity

import "time"

// Company representa una organización/tenant. Todo lo demás cuelga de su ID;
// nunca hay visibilidad entre empresas.
type Company struct {
	ID        string
	Name      string // único, se compara exacto
	CreatedAt time.Time
}
