package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/application/inventory"
	"github.com/jhoicas/Distribucion-api/internal/domain"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
	"github.com/jhoicas/Distribucion-api/internal/domain/repository"
)

// ProductTxRunner ejecuta fn con un ProductRepository atado a una transacción.
type ProductTxRunner interface {
	RunProducts(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}

// ProductUseCase alta y consulta de productos. Las existencias nunca se editan:
// se derivan del libro de distribuciones.
type ProductUseCase struct {
	repo     repository.ProductRepository
	ledger   *inventory.Ledger
	txRunner ProductTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ledger repository.LedgerRepository, txRunner ProductTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, ledger: inventory.NewLedger(ledger), txRunner: txRunner}
}

// Create crea un producto con su cantidad inicial.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := newProduct(companyID, in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(entity.ProductStock{Product: *product}), nil
}

// BulkCreate crea todos los productos en una sola transacción: o entran todos o ninguno.
func (uc *ProductUseCase) BulkCreate(ctx context.Context, companyID string, items []dto.CreateProductRequest) (int, error) {
	if len(items) == 0 {
		return 0, domain.Invalid("se requiere al menos un producto")
	}
	now := time.Now()
	products := make([]*entity.Product, 0, len(items))
	for i, in := range items {
		p, err := newProduct(companyID, in, now)
		if err != nil {
			return 0, domain.Invalid("products[%d]: %v", i, err)
		}
		products = append(products, p)
	}
	err := uc.txRunner.RunProducts(ctx, func(productRepo repository.ProductRepository) error {
		return productRepo.CreateMany(ctx, products)
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// GetByID producto con sus existencias restantes.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	stock, err := uc.ledger.ProductStock(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(*stock), nil
}

// ListWithStock todos los productos con inicial y restante, más recientes primero.
func (uc *ProductUseCase) ListWithStock(ctx context.Context, companyID string) ([]dto.ProductResponse, error) {
	stocks, err := uc.ledger.ListStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, *toProductResponse(s))
	}
	return out, nil
}

// ListAvailable productos con restante > 0 ordenados por nombre. Alimenta la foto del asistente.
func (uc *ProductUseCase) ListAvailable(ctx context.Context, companyID string) ([]dto.AvailableProductResponse, error) {
	stocks, err := uc.ledger.ListStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailableProductResponse, 0, len(stocks))
	for _, s := range stocks {
		if s.Remaining() <= 0 {
			continue
		}
		out = append(out, dto.AvailableProductResponse{
			ID:                s.Product.ID,
			Name:              s.Product.Name,
			Category:          s.Product.Category,
			RemainingQuantity: s.Remaining(),
		})
	}
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func newProduct(companyID string, in dto.CreateProductRequest, now time.Time) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	if in.Quantity == nil || *in.Quantity < 0 {
		return nil, domain.Invalid("quantity debe ser un entero no negativo")
	}
	return &entity.Product{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Name:            name,
		Category:        trimmed(in.Category),
		Description:     trimmed(in.Description),
		InitialQuantity: *in.Quantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return entity.NullableString(*s)
}

func toProductResponse(s entity.ProductStock) *dto.ProductResponse {
	remaining := s.Remaining()
	if remaining < 0 {
		remaining = 0
	}
	return &dto.ProductResponse{
		ID:                s.Product.ID,
		Name:              s.Product.Name,
		Category:          s.Product.Category,
		Description:       s.Product.Description,
		InitialQuantity:   s.Product.InitialQuantity,
		RemainingQuantity: remaining,
		CreatedAt:         s.Product.CreatedAt,
		UpdatedAt:         s.Product.UpdatedAt,
	}
}
