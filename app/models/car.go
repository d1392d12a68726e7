package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Car is a single vehicle record in the catalog. Title is the only required
// field; everything else is optional seller-provided detail.
type Car struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(150)" json:"title" validate:"required"`
	Description  string    `gorm:"type:text;default:null" json:"description"`
	Year         int       `json:"year"`
	Driven       int       `json:"driven"`
	Registration string    `gorm:"type:varchar(50);default:null" json:"registration"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (car *Car) Validate() error {
	v := validator.New()

	return v.Struct(car)
}
