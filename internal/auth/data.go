package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a token does not exist or is already revoked.
var ErrNotFound = errors.New("token not found")

// Repository provides access to the auth database
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new auth repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// InsertToken stores a token hash with its scopes
func (r *Repository) InsertToken(ctx context.Context, tokenHash, label string, scopes []Scope, expiresAt *time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO tokens (token_hash, label, expires_at)
		VALUES (?, ?, ?)
	`, tokenHash, label, expiresAt)
	if err != nil {
		return 0, err
	}
	tokenID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, s := range scopes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO token_scopes (token_id, scope) VALUES (?, ?)
		`, tokenID, string(s)); err != nil {
			return 0, err
		}
	}

	return tokenID, tx.Commit()
}

const tokenColumns = `id, label, expires_at, revoked_at, last_used_at, created_at`

func scanToken(row interface{ Scan(...interface{}) error }) (*Token, error) {
	var t Token
	var expiresAt, revokedAt, lastUsedAt sql.NullTime
	if err := row.Scan(&t.ID, &t.Label, &expiresAt, &revokedAt, &lastUsedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.ExpiresAt = ScanNullableTime(expiresAt)
	t.RevokedAt = ScanNullableTime(revokedAt)
	t.LastUsedAt = ScanNullableTime(lastUsedAt)
	return &t, nil
}

// GetTokenByHash returns the token stored under a hash, or nil
func (r *Repository) GetTokenByHash(ctx context.Context, tokenHash string) (*Token, error) {
	t, err := scanToken(r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+` FROM tokens WHERE token_hash = ?
	`, tokenHash))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Scopes, err = r.GetTokenScopes(ctx, t.ID)
	return t, err
}

// GetTokenByID returns a token by ID, or nil
func (r *Repository) GetTokenByID(ctx context.Context, id int64) (*Token, error) {
	t, err := scanToken(r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+` FROM tokens WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Scopes, err = r.GetTokenScopes(ctx, t.ID)
	return t, err
}

// ListTokens returns every token, newest first
func (r *Repository) ListTokens(ctx context.Context) ([]Token, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+tokenColumns+` FROM tokens ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tokens {
		tokens[i].Scopes, err = r.GetTokenScopes(ctx, tokens[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

// GetTokenScopes returns the scopes granted to a token
func (r *Repository) GetTokenScopes(ctx context.Context, tokenID int64) ([]Scope, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT scope FROM token_scopes WHERE token_id = ? ORDER BY scope
	`, tokenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scopes []Scope
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		scopes = append(scopes, Scope(s))
	}
	return scopes, rows.Err()
}

// RevokeToken marks a token revoked
func (r *Repository) RevokeToken(ctx context.Context, id int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL
	`, at, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchTokens records the last use of several tokens in one transaction
func (r *Repository) TouchTokens(ctx context.Context, lastUsed map[int64]time.Time) error {
	if len(lastUsed) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE tokens SET last_used_at = ? WHERE id = ?
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, at := range lastUsed {
		if _, err := stmt.ExecContext(ctx, at, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
