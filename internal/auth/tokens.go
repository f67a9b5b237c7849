package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

const (
	// TokenPrefix is the prefix for all generated tokens
	TokenPrefix = "lunch_"
)

// Errors returned by ValidateToken
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenStore manages API token operations
type TokenStore struct {
	repo *Repository
	now  func() time.Time
}

// NewTokenStore creates a new token store
func NewTokenStore(repo *Repository) *TokenStore {
	return &TokenStore{
		repo: repo,
		now:  time.Now,
	}
}

// GenerateToken creates a new random token with the lunch_ prefix
// Format: lunch_ + Base58(SHA256(random_bytes))
func (s *TokenStore) GenerateToken() (rawToken string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", err
	}

	hash := sha256.Sum256(randomBytes)
	rawToken = TokenPrefix + base58.Encode(hash[:])

	return rawToken, hashToken(rawToken), nil
}

// hashToken creates a SHA256 hash of a token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// CreateToken issues a token with the given scopes. The raw value is only
// available on the returned struct.
func (s *TokenStore) CreateToken(ctx context.Context, label string, scopeNames []string, expiresAt *time.Time) (*TokenWithRaw, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("token label is required")
	}

	scopes, err := ParseScopes(scopeNames)
	if err != nil {
		return nil, err
	}

	if expiresAt != nil && !expiresAt.After(s.now()) {
		return nil, fmt.Errorf("token expiry must be in the future")
	}

	rawToken, tokenHash, err := s.GenerateToken()
	if err != nil {
		return nil, err
	}

	tokenID, err := s.repo.InsertToken(ctx, tokenHash, label, scopes, expiresAt)
	if err != nil {
		return nil, err
	}

	return &TokenWithRaw{
		Token: Token{
			ID:        tokenID,
			Label:     label,
			Scopes:    scopes,
			ExpiresAt: expiresAt,
			CreatedAt: s.now(),
		},
		RawToken: rawToken,
	}, nil
}

// ValidateToken looks up a raw token and checks that it is still usable
func (s *TokenStore) ValidateToken(ctx context.Context, rawToken string) (*Token, error) {
	if !strings.HasPrefix(rawToken, TokenPrefix) {
		return nil, ErrInvalidToken
	}

	t, err := s.repo.GetTokenByHash(ctx, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrInvalidToken
	}

	if t.RevokedAt != nil {
		return nil, ErrTokenRevoked
	}
	if t.ExpiresAt != nil && !t.ExpiresAt.After(s.now()) {
		return nil, ErrTokenExpired
	}
	return t, nil
}

// ListTokens returns all tokens (without raw values)
func (s *TokenStore) ListTokens(ctx context.Context) ([]Token, error) {
	return s.repo.ListTokens(ctx)
}

// GetToken returns a token by ID, or ErrNotFound
func (s *TokenStore) GetToken(ctx context.Context, id int64) (*Token, error) {
	t, err := s.repo.GetTokenByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

// RevokeToken revokes a token. Revoking twice returns ErrNotFound.
func (s *TokenStore) RevokeToken(ctx context.Context, id int64) error {
	return s.repo.RevokeToken(ctx, id, s.now())
}
