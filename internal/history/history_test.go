package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, outcome := range []string{"success", "warning", "failed"} {
		err := store.Record(ctx, BuildRecord{
			BuildID:    "build-" + outcome,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			DurationMS: 120,
			Outcome:    outcome,
			Pages:      5 + i,
			Warnings:   i,
			Error:      "",
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "build-failed", records[0].BuildID)
	assert.Equal(t, "build-warning", records[1].BuildID)
	assert.Equal(t, 6, records[1].Pages)
	assert.Equal(t, base.Add(time.Minute), records[1].StartedAt)
}

func TestRecentOnEmptyStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
