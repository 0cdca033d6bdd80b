package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category groups products for the storefront menus.
type Category struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	NameEn      string       `gorm:"column:name_en;type:text;not null"`
	NameKh      string       `gorm:"column:name_kh;type:text"`
	Description string       `gorm:"column:description;type:text"`
	CreatedAt   time.Time    `gorm:"not null"`
	UpdatedAt   time.Time    `gorm:"not null"`
}

func (Category) TableName() string { return "categories" }
