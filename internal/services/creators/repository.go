package creators

import (
	"context"
	"errors"
	"fmt"

	"github.com/prophetlog/prediction-api/internal/models"
	"gorm.io/gorm"
)

// ErrCreatorNotFound indicates no creator matched the lookup
var ErrCreatorNotFound = errors.New("creator not found")

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new creator repository
func NewRepository(db *gorm.DB) CreatorRepository {
	return &repository{db: db}
}

// CreateCreator creates a new tracked channel
func (r *repository) CreateCreator(ctx context.Context, creator *models.Creator) error {
	if err := r.db.WithContext(ctx).Create(creator).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("creator with channel id %s already exists", creator.ChannelID)
		}
		return fmt.Errorf("creating creator: %w", err)
	}
	return nil
}

// GetCreatorByID retrieves a creator by its database ID
func (r *repository) GetCreatorByID(ctx context.Context, id uint) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.WithContext(ctx).First(&creator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("getting creator: %w", err)
	}
	return &creator, nil
}

// GetCreatorByChannelID retrieves a creator by its external channel identifier
func (r *repository) GetCreatorByChannelID(ctx context.Context, channelID string) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("getting creator by channel id: %w", err)
	}
	return &creator, nil
}

// ListCreators returns all tracked channels
func (r *repository) ListCreators(ctx context.Context) ([]models.Creator, error) {
	var creators []models.Creator
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&creators).Error; err != nil {
		return nil, fmt.Errorf("listing creators: %w", err)
	}
	return creators, nil
}

// DeleteCreator removes a creator; videos, chunks, and predictions cascade.
// The delete is unscoped: a soft delete would leave the creator's rows behind
// without ever firing the foreign key cascade.
func (r *repository) DeleteCreator(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Creator{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting creator: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}
