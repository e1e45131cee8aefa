package creators

import (
	"context"

	"github.com/prophetlog/prediction-api/internal/models"
)

// CreatorRepository defines the data access interface for tracked channels
type CreatorRepository interface {
	CreateCreator(ctx context.Context, creator *models.Creator) error
	GetCreatorByID(ctx context.Context, id uint) (*models.Creator, error)
	GetCreatorByChannelID(ctx context.Context, channelID string) (*models.Creator, error)
	ListCreators(ctx context.Context) ([]models.Creator, error)
	DeleteCreator(ctx context.Context, id uint) error
}
