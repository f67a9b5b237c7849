package menu

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/orderwindow"
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no menu is scheduled for a date
	ErrNotFound = errors.New("no menu scheduled for that date")
	// ErrNoDefaultRules is returned when the school has not stored window rules yet
	ErrNoDefaultRules = errors.New("no default order window rules stored")
)

const (
	ruleStart = "start"
	ruleEnd   = "end"
)

type Repository struct {
	db  *sql.DB
	loc *time.Location
}

// NewRepository creates a new menu repository. Stored instants are returned in loc.
func NewRepository(db *sql.DB, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.Local
	}
	return &Repository{db: db, loc: loc}
}

// GetWindowRules returns the stored default rules
func (r *Repository) GetWindowRules(ctx context.Context) (*WindowRules, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, count, unit, anchor, clock_time FROM window_rules
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules WindowRules
	found := map[string]bool{}
	for rows.Next() {
		var kind string
		var rule orderwindow.Rule
		if err := rows.Scan(&kind, &rule.Count, &rule.Unit, &rule.Anchor, &rule.ClockTime); err != nil {
			return nil, err
		}
		switch kind {
		case ruleStart:
			rules.Start = rule
		case ruleEnd:
			rules.End = rule
		}
		found[kind] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found[ruleStart] || !found[ruleEnd] {
		return nil, ErrNoDefaultRules
	}
	return &rules, nil
}

// SetWindowRules replaces the stored default rules
func (r *Repository) SetWindowRules(ctx context.Context, rules WindowRules) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO window_rules (kind, count, unit, anchor, clock_time, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(kind) DO UPDATE SET
			count = excluded.count,
			unit = excluded.unit,
			anchor = excluded.anchor,
			clock_time = excluded.clock_time,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for kind, rule := range map[string]orderwindow.Rule{ruleStart: rules.Start, ruleEnd: rules.End} {
		if _, err := stmt.ExecContext(ctx, kind, rule.Count, string(rule.Unit), string(rule.Anchor), rule.ClockTime); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveMenu schedules a menu for its service date. Scheduling a date again
// replaces the rules, the window and the items.
func (r *Repository) SaveMenu(ctx context.Context, m *Menu) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	var menuID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO menus (
			service_date,
			start_count, start_unit, start_anchor, start_clock_time,
			end_count, end_unit, end_anchor, end_clock_time,
			order_start_time, order_end_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(service_date) DO UPDATE SET
			start_count = excluded.start_count,
			start_unit = excluded.start_unit,
			start_anchor = excluded.start_anchor,
			start_clock_time = excluded.start_clock_time,
			end_count = excluded.end_count,
			end_unit = excluded.end_unit,
			end_anchor = excluded.end_anchor,
			end_clock_time = excluded.end_clock_time,
			order_start_time = excluded.order_start_time,
			order_end_time = excluded.order_end_time
		RETURNING id`,
		m.ServiceDate,
		m.StartRule.Count, string(m.StartRule.Unit), string(m.StartRule.Anchor), m.StartRule.ClockTime,
		m.EndRule.Count, string(m.EndRule.Unit), string(m.EndRule.Anchor), m.EndRule.ClockTime,
		m.Window.OrderStart, m.Window.OrderEnd,
	).Scan(&menuID)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE menu_id = ?", menuID); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO menu_items (menu_id, name, description, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, item := range m.Items {
		if _, err := stmt.ExecContext(ctx, menuID, item.Name, nullString(item.Description), i); err != nil {
			return 0, err
		}
	}

	return menuID, tx.Commit()
}

// GetMenuByDate returns the menu for a YYYY-MM-DD service date
func (r *Repository) GetMenuByDate(ctx context.Context, date string) (*Menu, error) {
	var m Menu
	var start, end time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT id, service_date,
			start_count, start_unit, start_anchor, start_clock_time,
			end_count, end_unit, end_anchor, end_clock_time,
			order_start_time, order_end_time
		FROM menus WHERE service_date = ?`, date,
	).Scan(
		&m.ID, &m.ServiceDate,
		&m.StartRule.Count, &m.StartRule.Unit, &m.StartRule.Anchor, &m.StartRule.ClockTime,
		&m.EndRule.Count, &m.EndRule.Unit, &m.EndRule.Anchor, &m.EndRule.ClockTime,
		&start, &end,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	serviceDate, err := clock.ParseDate(m.ServiceDate, r.loc)
	if err != nil {
		return nil, err
	}
	m.Window = orderwindow.Window{
		ServiceDate: serviceDate,
		OrderStart:  start.In(r.loc),
		OrderEnd:    end.In(r.loc),
	}

	m.Items, err = r.getItems(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) getItems(ctx context.Context, menuID int64) ([]MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description FROM menu_items
		WHERE menu_id = ? ORDER BY position, id`, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Avoid nil slices in JSON response
	items := []MenuItem{}
	for rows.Next() {
		var it MenuItem
		var desc sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &desc); err != nil {
			return nil, err
		}
		it.Description = desc.String
		items = append(items, it)
	}
	return items, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

//   This project is the lunch ordering backend API for the OpenSourceDUTH team. Meal-service scheduling, lunch time resolution and service reports for the school cafeteria portal.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
