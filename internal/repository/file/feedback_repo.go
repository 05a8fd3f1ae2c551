// Package file stores feedback as JSON Lines: one record per line, appended
// and fsynced under a process-wide writer lock.
package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
)

type FeedbackRepo struct {
	path string
	log  zerolog.Logger

	mu     sync.Mutex
	f      *os.File
	closed bool
}

func NewFeedbackRepo(path string, log zerolog.Logger) *FeedbackRepo {
	return &FeedbackRepo{path: path, log: log.With().Str("store", "file").Logger()}
}

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

func (r *FeedbackRepo) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f != nil {
		return nil
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	r.f = f
	return nil
}

// Append writes fb as a single line. If the write or fsync fails the file is
// truncated back to its previous length so no partial line survives. A file
// left ending mid-line (crash, failed truncate) gets a newline first, so the
// torn tail is skipped on read instead of swallowing this record.
func (r *FeedbackRepo) Append(ctx context.Context, fb *models.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return repository.ErrClosed
	}
	if r.f == nil {
		return errors.New("file store not initialized")
	}

	st, err := r.f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	if st.Size() > 0 {
		torn, err := r.tornTail(st.Size())
		if err != nil {
			return fmt.Errorf("read tail %s: %w", r.path, err)
		}
		if torn {
			r.log.Warn().Int64("size", st.Size()).Msg("store ends mid-line, starting a new line")
			line = append([]byte{'\n'}, line...)
		}
	}
	if _, err := r.f.Write(line); err != nil {
		r.rollback(st.Size())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := r.f.Sync(); err != nil {
		r.rollback(st.Size())
		return fmt.Errorf("sync %s: %w", r.path, err)
	}
	return nil
}

func (r *FeedbackRepo) tornTail(size int64) (bool, error) {
	last := make([]byte, 1)
	if _, err := r.f.ReadAt(last, size-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

func (r *FeedbackRepo) rollback(size int64) {
	if err := r.f.Truncate(size); err != nil {
		r.log.Error().Err(err).Int64("size", size).Msg("truncate after failed append")
	}
}

// ListAll reads every line in order. A missing or unreadable file reads as
// empty; lines that do not decode are skipped. Lines have no length cap.
func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	// read under the writer lock so an in-flight append is never seen half written
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, repository.ErrClosed
	}
	f, err := os.Open(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Warn().Err(err).Msg("unreadable store, treating as empty")
		}
		return []models.Feedback{}, nil
	}
	defer f.Close()
	return decodeLines(f, r.log), nil
}

func decodeLines(src io.Reader, log zerolog.Logger) []models.Feedback {
	out := []models.Feedback{}
	rd := bufio.NewReader(src)
	for n := 1; ; n++ {
		raw, err := rd.ReadBytes('\n')
		if line := bytes.TrimSpace(raw); len(line) > 0 {
			var fb models.Feedback
			if uerr := json.Unmarshal(line, &fb); uerr != nil {
				log.Warn().Err(uerr).Int("line", n).Msg("skipping corrupt record")
			} else {
				out = append(out, fb)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Int("line", n).Msg("stopped reading store")
			}
			return out
		}
	}
}

func (r *FeedbackRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
