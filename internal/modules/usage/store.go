package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db     *pgxpool.Pool
	tokens int
	now    func() time.Time
}

// NewStore returns a Store granting tokens per month; tokens < 1 means DefaultTokens.
func NewStore(db *pgxpool.Pool, tokens int) *Store {
	if tokens < 1 {
		tokens = DefaultTokens
	}
	return &Store{db: db, tokens: tokens, now: time.Now}
}

// UseToken atomically checks the monthly quota and deducts one token.
// It resets the counter when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or client absent).
func (s *Store) UseToken(ctx context.Context, uid string) error {
	month := s.now().Format(monthLayout)

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, s.tokens, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a row for uid with the full allowance; an existing row is left alone.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.tokens, s.now().Format(monthLayout))
	return err
}

// Remaining reports the tokens left for uid this month, or the full allowance for an unseen client.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	month := s.now().Format(monthLayout)
	var remaining int
	var last string
	err := s.db.QueryRow(ctx,
		`SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid,
	).Scan(&remaining, &last)
	if err != nil {
		if isNoRows(err) {
			return s.tokens, nil
		}
		return 0, err
	}
	if last != month {
		return s.tokens, nil
	}
	return remaining, nil
}
