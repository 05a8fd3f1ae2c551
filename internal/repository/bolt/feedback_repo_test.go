package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
)

func newRepo(t *testing.T) (*FeedbackRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feedback.db")
	r := NewFeedbackRepo(path, zerolog.Nop())
	require.NoError(t, r.Init(context.Background()))
	t.Cleanup(func() { _ = r.Close() })
	return r, path
}

func fb(i int) *models.Feedback {
	return &models.Feedback{
		ID:       fmt.Sprintf("id-%03d", i),
		Name:     "Grace",
		Email:    "grace@example.com",
		Category: models.CategoryFeature,
		Body:     fmt.Sprintf("request %d", i),
		Analysis: models.Classification{Priority: i % 11},
	}
}

func TestFeedbackRepo_InsertionOrder(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	// more than 255 entries so keys cross a byte boundary
	for i := 0; i < 300; i++ {
		require.NoError(t, r.Append(ctx, fb(i)))
	}

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 300)
	for i := range got {
		assert.Equal(t, fmt.Sprintf("id-%03d", i), got[i].ID)
	}
}

func TestFeedbackRepo_Reopen(t *testing.T) {
	r, path := newRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, fb(1)))
	require.NoError(t, r.Close())

	again := NewFeedbackRepo(path, zerolog.Nop())
	require.NoError(t, again.Init(ctx))
	defer again.Close()
	require.NoError(t, again.Append(ctx, fb(2)))

	got, err := again.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-001", got[0].ID)
	assert.Equal(t, "id-002", got[1].ID)
}

func TestFeedbackRepo_SkipsCorruptValues(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, fb(1)))

	require.NoError(t, r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFeedback)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), []byte("{broken"))
	}))

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFeedbackRepo_Concurrent(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Append(ctx, fb(i)))
		}(i)
	}
	wg.Wait()

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 32)
}

func TestFeedbackRepo_Closed(t *testing.T) {
	r, _ := newRepo(t)
	require.NoError(t, r.Close())

	assert.ErrorIs(t, r.Append(context.Background(), fb(1)), repository.ErrClosed)
}
