package entity

import "time"

// Product es un artículo del inventario de una empresa.
// InitialQuantity se fija al crear y nunca cambia; lo que queda se deriva de las distribuciones.
type Product struct {
	ID              string
	CompanyID       string
	Name            string
	Category        *string
	Description     *string
	InitialQuantity int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductStock es un producto junto con la suma de lo distribuido, leída del libro de distribuciones.
type ProductStock struct {
	Product     Product
	Distributed int64
}

// Remaining existencias derivadas: inicial menos distribuido.
// Puede ser negativo si dos envíos concurrentes pasaron la validación a la vez.
func (s ProductStock) Remaining() int64 {
	return s.Product.InitialQuantity - s.Distributed
}
