// README: Usage module tests (lazy reset and quota boundary logic).
package usage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyguide/internal/infra"
)

// memStore mimics the SQL semantics of Store for a single month.
type memStore struct {
	rows    map[string]int
	tokens  int
	failUse error
}

func (m *memStore) UseToken(_ context.Context, uid string) error {
	if m.failUse != nil {
		return m.failUse
	}
	n, ok := m.rows[uid]
	if !ok || n == 0 {
		return ErrInsufficientTokens
	}
	m.rows[uid] = n - 1
	return nil
}

func (m *memStore) EnsureUser(_ context.Context, uid string) error {
	if _, ok := m.rows[uid]; !ok {
		m.rows[uid] = m.tokens
	}
	return nil
}

func (m *memStore) Remaining(_ context.Context, uid string) (int, error) {
	n, ok := m.rows[uid]
	if !ok {
		return m.tokens, nil
	}
	return n, nil
}

func TestService_NewClientIsInitialised(t *testing.T) {
	st := &memStore{rows: map[string]int{}, tokens: 3}
	svc := &Service{store: st}
	ctx := context.Background()

	require.NoError(t, svc.UseToken(ctx, "client-a"))
	n, err := svc.Remaining(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestService_ExhaustedQuota(t *testing.T) {
	st := &memStore{rows: map[string]int{}, tokens: 2}
	svc := &Service{store: st}
	ctx := context.Background()

	require.NoError(t, svc.UseToken(ctx, "client-b"))
	require.NoError(t, svc.UseToken(ctx, "client-b"))
	assert.ErrorIs(t, svc.UseToken(ctx, "client-b"), ErrInsufficientTokens)
}

func TestService_StoreErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	svc := &Service{store: &memStore{rows: map[string]int{}, failUse: boom}}
	assert.ErrorIs(t, svc.UseToken(context.Background(), "client-c"), boom)
}

// TestUseTokenCrossMonthReset verifies that a client with 0 tokens left from a previous month
// is automatically reset and the request succeeds.
func TestUseTokenCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO ai_usage VALUES ('client_reset', 0, '2000-01')")
	require.NoError(t, err)

	require.NoError(t, svc.UseToken(ctx, "client_reset"))

	var remaining int
	require.NoError(t, db.QueryRow(ctx, "SELECT tokens_remaining FROM ai_usage WHERE uid = 'client_reset'").Scan(&remaining))
	assert.Equal(t, DefaultTokens-1, remaining)
}

// TestUseTokenInsufficientCheck verifies that a client with 0 tokens in the current month is blocked.
func TestUseTokenInsufficientCheck(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month) VALUES ('client_zero', 0, $1)",
		time.Now().Format(monthLayout))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UseToken(ctx, "client_zero"), ErrInsufficientTokens)
	n, err := svc.Remaining(ctx, "client_zero")
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestUseTokenNewUser verifies that a client absent from the table is initialised on first call.
func TestUseTokenNewUser(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	n, err := svc.Remaining(ctx, "client_new")
	require.NoError(t, err)
	assert.Equal(t, DefaultTokens, n)

	require.NoError(t, svc.UseToken(ctx, "client_new"))

	var remaining int
	require.NoError(t, db.QueryRow(ctx, "SELECT tokens_remaining FROM ai_usage WHERE uid = 'client_new'").Scan(&remaining))
	assert.Equal(t, DefaultTokens-1, remaining)
}

// setupTestService creates a real postgres-backed Service for integration tests.
// It skips the test when SKYGUIDE_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("SKYGUIDE_TEST_DSN")
	if dsn == "" {
		t.Skip("SKYGUIDE_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	require.NoError(t, infra.Migrate(dsn))

	db, err := infra.NewDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(ctx, "TRUNCATE TABLE ai_usage")
	require.NoError(t, err)

	return NewService(NewStore(db, DefaultTokens)), db
}
