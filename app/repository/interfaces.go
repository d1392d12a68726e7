package repository

import (
	"gorm.io/gorm"

	"github.com/mkarlsen/carhub/app/models"
)

// CarRepository defines the interface for car-related database operations.
// Update and Delete report the number of affected rows so callers can tell
// "no such row" apart from success; zero is not an error.
type CarRepository interface {
	Create(car *models.Car) error
	List() ([]models.Car, error)
	Update(id uint, fields map[string]interface{}) (int64, error)
	Delete(id uint) (int64, error)
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	TouchLastLogin(id uint) error
}

// ProviderAccountRepository defines the interface for linked OAuth identities
type ProviderAccountRepository interface {
	GetByProviderSubject(provider, providerUserID string) (*models.ProviderAccount, error)
	Create(account *models.ProviderAccount) error
	Update(account *models.ProviderAccount) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Car             CarRepository
	User            UserRepository
	ProviderAccount ProviderAccountRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Car:             NewCarRepository(db),
		User:            NewUserRepository(db),
		ProviderAccount: NewProviderAccountRepository(db),
	}
}
