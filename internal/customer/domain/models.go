package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	FirstName string       `gorm:"column:first_name;type:text"`
	LastName  string       `gorm:"column:last_name;type:text"`
	Email     string       `gorm:"column:email;type:text;index"`
	Phone     string       `gorm:"column:phone;type:text"`
	Address   string       `gorm:"column:address;type:text"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }
