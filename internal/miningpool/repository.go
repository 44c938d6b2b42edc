package miningpool

import (
	"context"
	"errors"

	"github.com/robsahakyan/mining-pools/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines mining pool database operations
type Repository interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, pools []*models.MiningPool) error
	List(ctx context.Context) ([]*models.MiningPool, error)
	GetByPoolID(ctx context.Context, poolID string) (*models.MiningPool, error)
}

// repository implements Repository on top of gorm
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new mining pool repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Count returns the number of stored pools
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MiningPool{}).Count(&count).Error
	return count, err
}

// CreateBatch inserts pools in a single transaction. Rows whose pool_id
// already exists are skipped.
func (r *repository) CreateBatch(ctx context.Context, pools []*models.MiningPool) error {
	if len(pools) == 0 {
		return errors.New("pools cannot be empty")
	}
	for _, pool := range pools {
		if pool == nil {
			return errors.New("pool cannot be nil")
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pool_id"}},
			DoNothing: true,
		}).Create(&pools).Error
	})
}

// List retrieves every pool in insertion order
func (r *repository) List(ctx context.Context) ([]*models.MiningPool, error) {
	var pools []*models.MiningPool
	err := r.db.WithContext(ctx).Order("id ASC").Find(&pools).Error
	return pools, err
}

// GetByPoolID retrieves a pool by its external identifier. It returns
// (nil, nil) when no pool matches.
func (r *repository) GetByPoolID(ctx context.Context, poolID string) (*models.MiningPool, error) {
	if poolID == "" {
		return nil, errors.New("poolID cannot be empty")
	}

	var pool models.MiningPool
	err := r.db.WithContext(ctx).Where("pool_id = ?", poolID).First(&pool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pool, nil
}
