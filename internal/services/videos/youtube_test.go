package videos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/models"
	apperrors "github.com/prophetlog/prediction-api/pkg/errors"
)

func TestNewYouTubeClientWithoutKeyDegrades(t *testing.T) {
	client, err := NewYouTubeClient(context.Background(), "", zap.NewNop())
	require.NoError(t, err, "a missing key must not fail construction")
	require.NotNil(t, client)

	_, err = client.ListRecent(context.Background(), "UC123", 5)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeConfigRequired, appErr.Code)
}

func TestDiscoverAndStoreWithDegradedClient(t *testing.T) {
	client, err := NewYouTubeClient(context.Background(), "", zap.NewNop())
	require.NoError(t, err)

	// The missing credential surfaces as a stage-level discovery error, so
	// the repository is never touched
	service := NewService(client, nil, zap.NewNop())
	creator := &models.Creator{ChannelID: "UC123", Name: "Analyst"}
	creator.ID = 3

	_, err = service.DiscoverAndStore(context.Background(), creator, 5)
	require.Error(t, err)

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
}
