package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS feedback (
	seq           BIGSERIAL PRIMARY KEY,
	id            TEXT        NOT NULL UNIQUE,
	created_at    TIMESTAMPTZ NOT NULL,
	name          TEXT        NOT NULL,
	email         TEXT        NOT NULL,
	category      TEXT        NOT NULL,
	body          TEXT        NOT NULL,
	urgency       SMALLINT    NOT NULL,
	impact        SMALLINT    NOT NULL,
	priority      SMALLINT    NOT NULL,
	theme         TEXT        NOT NULL,
	confidence    SMALLINT    NOT NULL,
	assigned_team TEXT        NOT NULL
)`

type FeedbackRepo struct{ db *pgxpool.Pool }

func NewFeedbackRepo(db *pgxpool.Pool) *FeedbackRepo { return &FeedbackRepo{db: db} }

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

func (r *FeedbackRepo) Init(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create feedback table: %w", err)
	}
	return nil
}

// Append is a single INSERT; seq gives the insertion order.
func (r *FeedbackRepo) Append(ctx context.Context, f *models.Feedback) error {
	a := f.Analysis
	_, err := r.db.Exec(ctx, `
		INSERT INTO feedback (id, created_at, name, email, category, body,
			urgency, impact, priority, theme, confidence, assigned_team)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		f.ID, f.CreatedAt, f.Name, f.Email, string(f.Category), f.Body,
		a.Urgency, a.Impact, a.Priority, a.Theme, a.Confidence, a.AssignedTeam,
	)
	return err
}

func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, name, email, category, body,
			urgency, impact, priority, theme, confidence, assigned_team
		FROM feedback
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		var (
			f   models.Feedback
			cat string
		)
		if err := rows.Scan(
			&f.ID, &f.CreatedAt, &f.Name, &f.Email, &cat, &f.Body,
			&f.Analysis.Urgency, &f.Analysis.Impact, &f.Analysis.Priority,
			&f.Analysis.Theme, &f.Analysis.Confidence, &f.Analysis.AssignedTeam,
		); err != nil {
			return nil, err
		}
		f.Category = models.Category(cat)
		out = append(out, f)
	}
	return out, rows.Err()
}

// Close is a no-op; the pool belongs to the caller.
func (r *FeedbackRepo) Close() error { return nil }
