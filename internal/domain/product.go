package domain

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет модель товара в каталоге,
// соответствует таблице products в бд
type Product struct {
	ID          int64           `json:"id" db:"id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Description sql.NullString  `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	ImageURL    sql.NullString  `json:"image_url" db:"image_url"`
}

func (Product) TableName() string {
	return "products"
}

// Active вычисляет флаг активности товара.
// Флаг всегда является чистой функцией от остатка на складе,
// вызывающий код никогда не задаёт его самостоятельно.
func (p Product) Active() bool {
	return p.Stock > 0
}

// ProductEvent представляет запись аудита изменения каталога,
// соответствует таблице product_events в бд
type ProductEvent struct {
	ID          int64     `json:"id" db:"id"`
	Action      string    `json:"action" db:"action"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	OccurredAt  time.Time `json:"occurred_at" db:"occurred_at"`
}

func (ProductEvent) TableName() string {
	return "product_events"
}
