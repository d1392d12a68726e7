package repository

import (
	"gorm.io/gorm"

	"github.com/mkarlsen/carhub/app/models"
)

// carRepository implements the CarRepository interface
type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository instance
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

// Create persists a new car and back-fills ID and CreatedAt
func (r *carRepository) Create(car *models.Car) error {
	return r.db.Create(car).Error
}

// List returns all cars, newest first. An empty table yields an empty
// slice, not an error.
func (r *carRepository) List() ([]models.Car, error) {
	var cars []models.Car
	err := r.db.Order("created_at DESC").Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// Update overwrites the mutable columns of a single row in one statement.
// The map form is used so zero values clear columns the same way the
// original five-column SET list did.
func (r *carRepository) Update(id uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Car{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Delete removes a single row by id
func (r *carRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Car{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
