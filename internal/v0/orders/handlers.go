package orders

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/logger"
	"LunchAPI/internal/report"
	"LunchAPI/internal/v0/common"
	"LunchAPI/internal/v0/menu"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrOrderingClosed is returned when an item's service date is outside its ordering window
var ErrOrderingClosed = errors.New("ordering is closed for that service date")

// MenuLookup finds the menu scheduled for a service date
type MenuLookup interface {
	GetMenuByDate(ctx context.Context, date string) (*menu.Menu, error)
}

type Handler struct {
	repo  *Repository
	menus MenuLookup
	loc   *time.Location
	now   func() time.Time
}

func NewHandler(repo *Repository, menus MenuLookup, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{repo: repo, menus: menus, loc: loc, now: time.Now}
}

// PostOrder places an order. Every item's service date must have a menu
// whose ordering window is open now, and the item must be on that menu.
// POST /v0/orders
func (h *Handler) PostOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	order, rejections, err := h.buildOrder(c.Request.Context(), req)
	if err != nil {
		var invalid *invalidItemError
		if errors.As(err, &invalid) {
			common.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("failed to check order", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to check order")
		return
	}

	if len(rejections) > 0 {
		msgs := make([]string, 0, len(rejections))
		for _, r := range rejections {
			msgs = append(msgs, fmt.Sprintf("item %d (%s): %s", r.Index, r.ServiceDate, r.Reason))
		}
		logger.Info("order rejected", "placedBy", req.PlacedBy, "rejected", len(rejections))
		c.JSON(http.StatusConflict, common.CreateAPIResponse(
			gin.H{"rejected": rejections}, msgs, c.GetString(logger.RequestIDKey)))
		return
	}

	if err := h.repo.CreateOrder(c.Request.Context(), order); err != nil {
		logger.Error("failed to store order", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to store order")
		return
	}
	logger.Info("order placed", "id", order.ID, "placedBy", order.PlacedBy, "items", len(order.Items))

	common.Success(c, http.StatusCreated, order)
}

// GetOrders lists the orders for ?date=YYYY-MM-DD
// GET /v0/orders
func (h *Handler) GetOrders(c *gin.Context) {
	date, err := clock.ParseDate(c.Query("date"), h.loc)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD")
		return
	}

	orders, err := h.repo.OrdersForDate(c.Request.Context(), date)
	if err != nil {
		logger.Error("failed to list orders", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []report.Order{}
	}
	common.Success(c, http.StatusOK, gin.H{"orders": orders})
}

type invalidItemError struct {
	index int
	msg   string
}

func (e *invalidItemError) Error() string {
	return fmt.Sprintf("item %d: %s", e.index, e.msg)
}

func (h *Handler) buildOrder(ctx context.Context, req PlaceOrderRequest) (report.Order, []Rejection, error) {
	now := h.now()
	order := report.Order{ID: uuid.New().String(), PlacedBy: req.PlacedBy}
	menus := make(map[string]*menu.Menu)

	var rejections []Rejection
	for i, it := range req.Items {
		date, err := clock.ParseDate(it.ServiceDate, h.loc)
		if err != nil {
			return order, nil, &invalidItemError{index: i, msg: "invalid serviceDate, use YYYY-MM-DD"}
		}
		key := date.Format(clock.DateLayout)

		m, seen := menus[key]
		if !seen {
			m, err = h.menus.GetMenuByDate(ctx, key)
			if err != nil && !errors.Is(err, menu.ErrNotFound) {
				return order, nil, err
			}
			menus[key] = m
		}

		switch {
		case m == nil:
			rejections = append(rejections, Rejection{Index: i, ServiceDate: key, Reason: menu.ErrNotFound.Error()})
			continue
		case !m.Window.IsOpen(now):
			rejections = append(rejections, Rejection{Index: i, ServiceDate: key, Reason: ErrOrderingClosed.Error()})
			continue
		case !m.HasItem(it.Item):
			return order, nil, &invalidItemError{index: i, msg: fmt.Sprintf("'%s' is not on the menu for %s", it.Item, key)}
		}

		order.Items = append(order.Items, report.Meal{
			ServiceDate: date,
			Eater:       report.Eater{Kind: it.EaterKind, ID: it.EaterID},
			Item:        it.Item,
			Quantity:    it.Quantity,
		})
	}
	for i := range order.Items {
		order.Items[i].Quantity = order.Items[i].Servings()
	}
	return order, rejections, nil
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
