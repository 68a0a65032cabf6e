package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

type BanRepository interface {
	CreateBan(ctx context.Context, ban *models.Ban) error
	IsBanned(ctx context.Context, email string) (bool, error)
}

type PostgresBanRepository struct {
	db *gorm.DB
}

func NewPostgresBanRepository(db *gorm.DB) *PostgresBanRepository {
	return &PostgresBanRepository{db: db}
}

func (r *PostgresBanRepository) CreateBan(ctx context.Context, ban *models.Ban) error {
	return translate(r.db.WithContext(ctx).Create(ban).Error)
}

func (r *PostgresBanRepository) IsBanned(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Ban{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
