package sensor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, ErrNoReading)

	for i := 0; i < memoryHistorySize+10; i++ {
		require.NoError(t, repo.Save(ctx, Reading{Temperature: float64(i)}))
	}

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(memoryHistorySize+9), latest.Temperature)

	recent, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, float64(memoryHistorySize+9), recent[0].Temperature)
	assert.Equal(t, float64(memoryHistorySize+7), recent[2].Temperature)

	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, memoryHistorySize)
}
