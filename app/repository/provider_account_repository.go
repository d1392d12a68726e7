package repository

import (
	"gorm.io/gorm"

	"github.com/mkarlsen/carhub/app/models"
)

// providerAccountRepository implements the ProviderAccountRepository interface
type providerAccountRepository struct {
	db *gorm.DB
}

// NewProviderAccountRepository creates a new provider account repository instance
func NewProviderAccountRepository(db *gorm.DB) ProviderAccountRepository {
	return &providerAccountRepository{db: db}
}

// GetByProviderSubject resolves a linked account by its (provider, subject) key
func (r *providerAccountRepository) GetByProviderSubject(provider, providerUserID string) (*models.ProviderAccount, error) {
	var account models.ProviderAccount
	err := r.db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create links a provider identity to a user
func (r *providerAccountRepository) Create(account *models.ProviderAccount) error {
	return r.db.Create(account).Error
}

// Update saves refreshed provider tokens
func (r *providerAccountRepository) Update(account *models.ProviderAccount) error {
	return r.db.Save(account).Error
}
