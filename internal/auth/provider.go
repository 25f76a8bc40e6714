// Package auth is the identity capability: email + password accounts with
// stateless HS256 session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookalink/internal/apperr"
	"bookalink/internal/config"
	"bookalink/internal/model"
	"bookalink/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Identity struct {
	UserID   string                 `json:"user_id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  Identity  `json:"user"`
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Provider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// Session resolves a token issued by SignUp or SignIn.
	Session(ctx context.Context, token string) (*Identity, error)
	UpdateMetadata(ctx context.Context, userID string, metadata map[string]interface{}) error
}

type Option func(*providerImpl)

// WithCost overrides the bcrypt cost.
func WithCost(cost int) Option {
	return func(p *providerImpl) {
		p.cost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *providerImpl) {
		p.now = now
	}
}

type providerImpl struct {
	accounts repository.AccountRepository
	secret   []byte
	ttl      time.Duration
	cost     int
	now      func() time.Time
}

func NewProvider(accounts repository.AccountRepository, cfg *config.Auth, opts ...Option) Provider {
	p := &providerImpl{
		accounts: accounts,
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.TokenTTL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *providerImpl) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := p.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("sign up %s: %w", email, apperr.ErrConflict)
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     metadata,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return p.issue(account)
}

func (p *providerImpl) SignIn(ctx context.Context, email, password string) (*Session, error) {
	account, err := p.accounts.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("sign in: %w", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("sign in: %w", apperr.ErrUnauthorized)
	}

	return p.issue(account)
}

func (p *providerImpl) Session(ctx context.Context, token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("session: %w", apperr.ErrUnauthorized)
	}

	account, err := p.accounts.FindByID(ctx, claims.Subject)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("session: %w", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	return identityOf(account), nil
}

func (p *providerImpl) UpdateMetadata(ctx context.Context, userID string, metadata map[string]interface{}) error {
	return p.accounts.MergeMetadata(ctx, userID, metadata)
}

func (p *providerImpl) issue(account *model.Account) (*Session, error) {
	now := p.now()
	expiresAt := now.Add(p.ttl)

	claims := Claims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Session{
		Token:     signed,
		ExpiresAt: expiresAt,
		Identity:  *identityOf(account),
	}, nil
}

func identityOf(account *model.Account) *Identity {
	return &Identity{
		UserID:   account.ID,
		Email:    account.Email,
		Metadata: account.Metadata,
	}
}
