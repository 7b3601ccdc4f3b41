package repository

import (
	"context"

	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// No hay Update ni Delete: los usuarios son inmutables tras el registro.
type UserRepository interface {
	// Create devuelve domain.ErrDuplicateUser si (company_id, user_id) ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	GetByUserID(ctx context.Context, companyID, userID string) (*entity.User, error)
}
