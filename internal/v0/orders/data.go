package orders

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/report"
	"context"
	"database/sql"
	"time"
)

type Repository struct {
	db  *sql.DB
	loc *time.Location
}

// NewRepository creates a new order repository. Service dates are read in loc.
func NewRepository(db *sql.DB, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.Local
	}
	return &Repository{db: db, loc: loc}
}

// CreateOrder stores an order and its line items in one transaction
func (r *Repository) CreateOrder(ctx context.Context, o report.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "INSERT INTO orders (id, placed_by) VALUES (?, ?)", o.ID, o.PlacedBy); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_items (order_id, service_date, eater_kind, eater_id, item, quantity)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range o.Items {
		_, err := stmt.ExecContext(ctx, o.ID, m.ServiceDate.Format(clock.DateLayout),
			string(m.Eater.Kind), m.Eater.ID, m.Item, m.Servings())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// OrdersForDate returns every order with at least one item on the date.
// Only the items for that date are included, in insertion order.
func (r *Repository) OrdersForDate(ctx context.Context, date time.Time) ([]report.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.placed_by, i.service_date, i.eater_kind, i.eater_id, i.item, i.quantity
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE i.service_date = ?
		ORDER BY o.created_at, o.id, i.id`, date.Format(clock.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []report.Order
	index := make(map[string]int)
	for rows.Next() {
		var orderID, placedBy, serviceDate, kind string
		var m report.Meal
		if err := rows.Scan(&orderID, &placedBy, &serviceDate, &kind, &m.Eater.ID, &m.Item, &m.Quantity); err != nil {
			return nil, err
		}
		m.Eater.Kind = report.EaterKind(kind)
		m.ServiceDate, err = clock.ParseDate(serviceDate, r.loc)
		if err != nil {
			return nil, err
		}

		i, ok := index[orderID]
		if !ok {
			i = len(orders)
			index[orderID] = i
			orders = append(orders, report.Order{ID: orderID, PlacedBy: placedBy})
		}
		orders[i].Items = append(orders[i].Items, m)
	}
	return orders, rows.Err()
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
