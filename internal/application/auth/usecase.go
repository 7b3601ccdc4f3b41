package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
	"github.com/jhoicas/Distribucion-api/pkg/jwt"
)

const minPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
	hashCost    int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg, hashCost: bcrypt.DefaultCost}
}

// Register crea el usuario y, si la empresa no existe, también la empresa.
// Devuelve domain.ErrDuplicateUser si el user_id ya existe en esa empresa.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	userID := strings.TrimSpace(in.UserID)
	switch {
	case companyName == "" || userID == "" || strings.TrimSpace(in.Name) == "":
		return nil, domain.Invalid("company_name, user_id y name son obligatorios")
	case len(in.Password) < minPasswordLength:
		return nil, domain.Invalid("password debe tener al menos %d caracteres", minPasswordLength)
	case !entity.ValidRole(in.Role):
		return nil, domain.Invalid("role debe ser admin, manager o worker")
	}

	company, err := uc.getOrCreateCompany(ctx, companyName)
	if err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByUserID(ctx, company.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user, company)
}

// getOrCreateCompany busca la empresa por nombre exacto y la crea si no existe.
// Si otro registro la creó en paralelo, se relee.
func (uc *AuthUseCase) getOrCreateCompany(ctx context.Context, name string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}
	company = &entity.Company{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	err = uc.companyRepo.Create(ctx, company)
	if errors.Is(err, domain.ErrDuplicate) {
		company, err = uc.companyRepo.GetByName(ctx, name)
		if err == nil && company == nil {
			err = domain.ErrNotFound
		}
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Login verifica empresa, usuario y contraseña y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	company, err := uc.companyRepo.GetByName(ctx, strings.TrimSpace(in.CompanyName))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByUserID(ctx, company.ID, strings.TrimSpace(in.UserID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user, company)
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user, company), nil
}

func (uc *AuthUseCase) issue(user *entity.User, company *entity.Company) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user, company),
	}, nil
}

func toUserResponse(u *entity.User, c *entity.Company) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		CompanyName: c.Name,
		UserID:      u.UserID,
		Name:        u.Name,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
