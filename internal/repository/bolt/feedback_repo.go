// Package bolt keeps feedback in an embedded bbolt database. Keys come from the
// bucket sequence, so cursor order is insertion order.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
)

var bucketFeedback = []byte("feedback")

type FeedbackRepo struct {
	path string
	db   *bolt.DB
	log  zerolog.Logger
}

func NewFeedbackRepo(path string, log zerolog.Logger) *FeedbackRepo {
	return &FeedbackRepo{path: path, log: log.With().Str("store", "bolt").Logger()}
}

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

func (r *FeedbackRepo) Init(ctx context.Context) error {
	if r.db != nil {
		return nil
	}
	db, err := bolt.Open(r.path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("open bolt %s: %w", r.path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFeedback)
		return err
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create bucket: %w", err)
	}
	r.db = db
	return nil
}

// Append stores fb in its own write transaction; bbolt allows one writer at a
// time, which serializes concurrent submissions.
func (r *FeedbackRepo) Append(ctx context.Context, fb *models.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return errors.New("bolt store not initialized")
	}
	val, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFeedback)
		if b == nil {
			return bolt.ErrBucketNotFound
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), val)
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return repository.ErrClosed
	}
	return err
}

func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	if r.db == nil {
		return []models.Feedback{}, nil
	}
	out := []models.Feedback{}
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFeedback)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var fb models.Feedback
			if err := json.Unmarshal(v, &fb); err != nil {
				r.log.Warn().Err(err).Uint64("seq", binary.BigEndian.Uint64(k)).Msg("skipping corrupt record")
				return nil
			}
			out = append(out, fb)
			return nil
		})
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return nil, repository.ErrClosed
	}
	return out, err
}

func (r *FeedbackRepo) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
