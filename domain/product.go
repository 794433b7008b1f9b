package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     description TEXT,
//     price       NUMERIC NOT NULL,
//     stock       INTEGER DEFAULT 0,
//     image_url   TEXT,
//     category_id BIGINT REFERENCES categories(id),
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	Stock       int       `gorm:"column:stock;default:0" json:"stock"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	CategoryID  *uint64   `gorm:"column:category_id" json:"category_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductPatch is a partial update. Nil fields are left untouched. Stock
// set through here is a catalog correction, not an order mutation; orders
// go through the inventory ledger.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
	CategoryID  *uint64
}
