package cli

import (
	"LunchAPI/internal/auth"
	"LunchAPI/internal/clock"
	"context"
	"fmt"
	"strings"
	"time"
)

type TokenIssueCmd struct {
	Label   string   `help:"Who or what the token is for." required:""`
	Scope   []string `help:"Scopes to grant (menus, orders, lunchtimes, reports, admin)." required:""`
	Expires string   `help:"Expiry date (YYYY-MM-DD). The token stops working at the start of that day."`
}

func (c *TokenIssueCmd) Run(ctx *Context) error {
	var expiresAt *time.Time
	if c.Expires != "" {
		d, err := clock.ParseDate(c.Expires, ctx.location())
		if err != nil {
			return err
		}
		expiresAt = &d
	}

	db, err := ctx.openAuth()
	if err != nil {
		return err
	}
	defer db.Close()

	store := auth.NewTokenStore(auth.NewRepository(db))
	tok, err := store.CreateToken(context.Background(), c.Label, c.Scope, expiresAt)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Issued token %d (%s) with scopes %s\n", tok.ID, tok.Label, joinScopes(tok.Scopes))
	fmt.Fprintln(ctx.Out, "Store it now, it will not be shown again:")
	fmt.Fprintln(ctx.Out, tok.RawToken)
	return nil
}

type TokenRevokeCmd struct {
	ID int64 `help:"Token id." required:""`
}

func (c *TokenRevokeCmd) Run(ctx *Context) error {
	db, err := ctx.openAuth()
	if err != nil {
		return err
	}
	defer db.Close()

	store := auth.NewTokenStore(auth.NewRepository(db))
	if err := store.RevokeToken(context.Background(), c.ID); err != nil {
		return fmt.Errorf("revoke token %d: %w", c.ID, err)
	}
	fmt.Fprintf(ctx.Out, "Revoked token %d\n", c.ID)
	return nil
}

type TokenListCmd struct{}

func (c *TokenListCmd) Run(ctx *Context) error {
	db, err := ctx.openAuth()
	if err != nil {
		return err
	}
	defer db.Close()

	tokens, err := auth.NewTokenStore(auth.NewRepository(db)).ListTokens(context.Background())
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		fmt.Fprintln(ctx.Out, "No tokens issued")
		return nil
	}
	for _, t := range tokens {
		status := "active"
		switch {
		case t.RevokedAt != nil:
			status = "revoked"
		case t.ExpiresAt != nil && !t.ExpiresAt.After(ctx.now()):
			status = "expired"
		}
		fmt.Fprintf(ctx.Out, "%4d  %-24s %-8s %s\n", t.ID, t.Label, status, joinScopes(t.Scopes))
	}
	return nil
}

func joinScopes(scopes []auth.Scope) string {
	names := make([]string, len(scopes))
	for i, s := range scopes {
		names[i] = string(s)
	}
	return strings.Join(names, ",")
}
