package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Promotion struct {
	ID                 snowflake.ID `gorm:"primaryKey"`
	PromotionCode      string       `gorm:"column:promotion_code;type:varchar(64);not null;uniqueIndex:ux_promotions_promotion_code"`
	Description        string       `gorm:"column:description;type:text;not null"`
	StartDate          time.Time    `gorm:"column:start_date;not null"`
	EndDate            time.Time    `gorm:"column:end_date;not null"`
	DiscountPercentage float64      `gorm:"column:discount_percentage;not null"`
	ImageURL           string       `gorm:"column:image_url;type:text"`
	CreatedAt          time.Time    `gorm:"not null"`
	UpdatedAt          time.Time    `gorm:"not null"`
}

func (Promotion) TableName() string { return "promotions" }
