package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Product struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	ProductCode string        `gorm:"column:product_code;type:varchar(32);not null;uniqueIndex:ux_products_product_code"`
	NameEn      string        `gorm:"column:name_en;type:text;not null"`
	NameKh      string        `gorm:"column:name_kh;type:text"`
	CategoryID  snowflake.ID  `gorm:"column:category_id;not null;index"`
	SKU         string        `gorm:"column:sku;type:text"`
	ImageURL    *string       `gorm:"column:image_url;type:text"`
	CreatedBy   *snowflake.ID `gorm:"column:created_by"`
	UpdatedBy   *snowflake.ID `gorm:"column:updated_by"`
	CreatedAt   time.Time     `gorm:"not null"`
	UpdatedAt   time.Time     `gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// CodeSequence is the counter row product codes are drawn from.
type CodeSequence struct {
	Name       string    `gorm:"column:name;type:varchar(64);primaryKey"`
	NextNumber int64     `gorm:"column:next_number;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (CodeSequence) TableName() string { return "product_code_sequences" }
