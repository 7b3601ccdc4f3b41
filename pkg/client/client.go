// Package client es un cliente HTTP tipado de la API de distribución.
// Implementa los puertos StockSource y Submitter del asistente de asignación.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribucion-api/internal/application/allocation"
	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

const defaultTimeout = 15 * time.Second

// APIError respuesta de error de la API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: HTTP %d %s", e.Status, e.Code)
	}
	return e.Message
}

// Client habla con la API usando el Agent de Fiber.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

// Option configura el cliente.
type Option func(*Client)

// WithToken usa un JWT ya emitido.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout tiempo máximo por petición cuando el contexto no trae deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New crea un cliente contra baseURL (ej: http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: defaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token JWT en uso (vacío antes de Login).
func (c *Client) Token() string { return c.token }

// Login inicia sesión y guarda el token para las siguientes peticiones.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/login", in, nil, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// AvailableProducts productos con stock restante > 0, ordenados por nombre.
func (c *Client) AvailableProducts(ctx context.Context) ([]dto.AvailableProductResponse, error) {
	var out []dto.AvailableProductResponse
	if err := c.do(ctx, fiber.MethodGet, "/api/products/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableStock foto de existencias para una allocation.Session.
func (c *Client) AvailableStock(ctx context.Context) ([]allocation.StockItem, error) {
	products, err := c.AvailableProducts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]allocation.StockItem, 0, len(products))
	for _, p := range products {
		items = append(items, allocation.StockItem{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  entity.StringOrEmpty(p.Category),
			Remaining: p.RemainingQuantity,
		})
	}
	return items, nil
}

// SubmitDistribution registra la entrega a un trabajador. idempotencyKey puede ir vacío.
func (c *Client) SubmitDistribution(ctx context.Context, idempotencyKey string, in dto.CreateDistributionRequest) (int, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	var out dto.CountResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/distributions", in, headers, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Submit implementa allocation.Submitter. Un DUPLICATE_SUBMISSION se reporta como
// allocation.ErrAlreadySubmitted: el trabajador ya quedó registrado en un intento anterior.
func (c *Client) Submit(ctx context.Context, s allocation.Submission) error {
	req := dto.CreateDistributionRequest{
		WorkerName:   s.Worker.Name,
		WorkerGender: s.Worker.Gender,
		WorkerMobile: s.Worker.Mobile,
		Products:     make([]dto.DistributionItemRequest, 0, len(s.Worker.Lines)),
	}
	for _, l := range s.Worker.Lines {
		req.Products = append(req.Products, dto.DistributionItemRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	_, err := c.SubmitDistribution(ctx, s.IdempotencyKey, req)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == "DUPLICATE_SUBMISSION" {
		return fmt.Errorf("%w: %s", allocation.ErrAlreadySubmitted, apiErr.Message)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	a.Timeout(c.timeoutFor(ctx))
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	for k, v := range headers {
		a.Set(k, v)
	}
	if body != nil {
		a.JSON(body)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("client: preparar %s %s: %w", method, path, err)
	}

	status, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("client: %s %s: %w", method, path, errors.Join(errs...))
	}
	if status >= fiber.StatusBadRequest {
		var e dto.ErrorResponse
		_ = json.Unmarshal(raw, &e)
		return &APIError{Status: status, Code: e.Code, Message: e.Message}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decodificar %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) timeoutFor(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d > 0 {
			return d
		}
	}
	return c.timeout
}

var (
	_ allocation.Submitter   = (*Client)(nil)
	_ allocation.StockSource = (*Client)(nil)
)
