package transcripts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prophetlog/prediction-api/internal/database"
	"github.com/prophetlog/prediction-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Creator{},
		&models.Video{},
		&models.TranscriptChunk{},
		&models.Prediction{},
	))
	return db.DB
}

func seedVideo(t *testing.T, db *gorm.DB) *models.Video {
	t.Helper()

	creator := &models.Creator{ChannelID: "UC123", Name: "Analyst"}
	require.NoError(t, db.Create(creator).Error)

	video := &models.Video{CreatorID: creator.ID, YouTubeID: "vid-1", Status: models.VideoStatusDiscovered}
	require.NoError(t, db.Create(video).Error)
	return video
}

func TestReplaceChunksInsertsAndAdvancesStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	video := seedVideo(t, db)

	chunks := []models.TranscriptChunk{
		{Text: "second", StartTime: 5},
		{Text: "first", StartTime: 1},
	}
	require.NoError(t, repo.ReplaceChunks(ctx, video.ID, chunks, models.VideoStatusTranscribed))

	stored, err := repo.GetChunks(ctx, video.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "first", stored[0].Text, "chunks come back in start time order")
	assert.Equal(t, "second", stored[1].Text)

	var updated models.Video
	require.NoError(t, db.First(&updated, video.ID).Error)
	assert.Equal(t, models.VideoStatusTranscribed, updated.Status)
}

func TestReplaceChunksIsWholesale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	video := seedVideo(t, db)

	first := []models.TranscriptChunk{{Text: "old one", StartTime: 1}, {Text: "old two", StartTime: 2}}
	require.NoError(t, repo.ReplaceChunks(ctx, video.ID, first, models.VideoStatusTranscribed))

	second := []models.TranscriptChunk{{Text: "new only", StartTime: 3}}
	require.NoError(t, repo.ReplaceChunks(ctx, video.ID, second, models.VideoStatusTranscribed))

	stored, err := repo.GetChunks(ctx, video.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "new only", stored[0].Text)
}

func TestReplaceChunksEmptyMarksUnavailable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	video := seedVideo(t, db)

	require.NoError(t, repo.ReplaceChunks(ctx, video.ID, nil, models.VideoStatusUnavailable))

	stored, err := repo.GetChunks(ctx, video.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	var updated models.Video
	require.NoError(t, db.First(&updated, video.ID).Error)
	assert.Equal(t, models.VideoStatusUnavailable, updated.Status)
}

func TestReplaceChunksUnknownVideoRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedVideo(t, db)

	err := repo.ReplaceChunks(ctx, 9999, []models.TranscriptChunk{{Text: "orphan", StartTime: 1}}, models.VideoStatusTranscribed)
	require.Error(t, err)

	// The failed transaction must not leave orphan chunks behind
	var count int64
	require.NoError(t, db.Model(&models.TranscriptChunk{}).Where("video_id = ?", 9999).Count(&count).Error)
	assert.Zero(t, count)
}
