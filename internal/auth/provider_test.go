package auth

import (
	"context"
	"testing"
	"time"

	"bookalink/internal/apperr"
	"bookalink/internal/config"
	"bookalink/internal/repository"
	"bookalink/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newProvider(t *testing.T, opts ...Option) Provider {
	t.Helper()
	cfg := &config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}
	opts = append([]Option{WithCost(bcrypt.MinCost)}, opts...)
	return NewProvider(repository.NewAccountRepository(testutil.NewDB(t)), cfg, opts...)
}

func TestSignUpThenSession(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	session, err := p.SignUp(ctx, "Alice@Example.com", "secret1", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice@example.com", session.Identity.Email)

	identity, err := p.Session(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Identity.UserID, identity.UserID)
	assert.Equal(t, "alice", identity.Metadata["username"])
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	_, err := p.SignUp(ctx, "alice@example.com", "secret1", nil)
	require.NoError(t, err)

	_, err = p.SignUp(ctx, "ALICE@example.com", "secret2", nil)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	_, err := p.SignUp(ctx, "alice@example.com", "secret1", nil)
	require.NoError(t, err)

	session, err := p.SignIn(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, err = p.SignIn(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = p.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestSessionRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := issuedAt
	p := newProvider(t, WithClock(func() time.Time { return clock }))

	session, err := p.SignUp(ctx, "alice@example.com", "secret1", nil)
	require.NoError(t, err)

	_, err = p.Session(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = p.Session(ctx, session.Token+"x")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	clock = issuedAt.Add(2 * time.Hour)
	_, err = p.Session(ctx, session.Token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdateMetadata(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	session, err := p.SignUp(ctx, "alice@example.com", "secret1", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)

	require.NoError(t, p.UpdateMetadata(ctx, session.Identity.UserID, map[string]interface{}{"full_name": "Alice A"}))

	identity, err := p.Session(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Metadata["username"])
	assert.Equal(t, "Alice A", identity.Metadata["full_name"])
}
