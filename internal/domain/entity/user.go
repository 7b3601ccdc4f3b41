package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleWorker  = "worker"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleWorker:
		return true
	}
	return false
}

// User representa un usuario de una Company. Se crea en el registro y no se modifica después.
type User struct {
	ID           string
	CompanyID    string
	UserID       string // login, único dentro de la empresa
	Name         string
	Role         string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}
