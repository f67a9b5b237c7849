package menu

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/logger"
	"LunchAPI/internal/orderwindow"
	"LunchAPI/internal/v0/common"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler initialization that holds the Repository database connection so we can save the data
type Handler struct {
	repo *Repository
	loc  *time.Location
	now  func() time.Time
}

func NewHandler(repo *Repository, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{repo: repo, loc: loc, now: time.Now}
}

// PostMenu schedules a daily menu and stores its resolved ordering window
// POST /v0/menus
func (h *Handler) PostMenu(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	serviceDate, err := clock.ParseDate(req.ServiceDate, h.loc)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD")
		return
	}

	start, end := req.StartRule, req.EndRule
	if start == nil || end == nil {
		defaults, err := h.repo.GetWindowRules(c.Request.Context())
		if errors.Is(err, ErrNoDefaultRules) {
			common.Fail(c, http.StatusBadRequest, "startRule and endRule are required until default window rules are stored")
			return
		}
		if err != nil {
			logger.Error("failed to load window rules", "err", err)
			common.Fail(c, http.StatusInternalServerError, "failed to load window rules")
			return
		}
		if start == nil {
			start = &defaults.Start
		}
		if end == nil {
			end = &defaults.End
		}
	}

	window, err := orderwindow.Resolve(serviceDate, *start, *end)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	m := &Menu{
		ServiceDate: serviceDate.Format(clock.DateLayout),
		Items:       req.Items,
		StartRule:   *start,
		EndRule:     *end,
		Window:      window,
	}
	m.ID, err = h.repo.SaveMenu(c.Request.Context(), m)
	if err != nil {
		logger.Error("failed to save menu", "date", m.ServiceDate, "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to save menu")
		return
	}

	if !window.Accepting() {
		logger.Warn("menu scheduled with a window that never accepts orders",
			"date", m.ServiceDate, "start", window.OrderStart, "end", window.OrderEnd)
	}
	logger.Info("menu scheduled", "date", m.ServiceDate, "items", len(m.Items))

	saved, err := h.repo.GetMenuByDate(c.Request.Context(), m.ServiceDate)
	if err != nil {
		logger.Error("failed to reload menu", "date", m.ServiceDate, "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load menu")
		return
	}
	common.Success(c, http.StatusCreated, h.respond(saved))
}

// GetMenu returns the menu for ?date=YYYY-MM-DD with its window state
// GET /v0/menus
func (h *Handler) GetMenu(c *gin.Context) {
	serviceDate, err := clock.ParseDate(c.Query("date"), h.loc)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD")
		return
	}

	m, err := h.repo.GetMenuByDate(c.Request.Context(), serviceDate.Format(clock.DateLayout))
	if errors.Is(err, ErrNotFound) {
		common.Fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Error("failed to load menu", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load menu")
		return
	}
	common.Success(c, http.StatusOK, h.respond(m))
}

// GetWindowRules returns the default rules
// GET /v0/menus/window-rules
func (h *Handler) GetWindowRules(c *gin.Context) {
	rules, err := h.repo.GetWindowRules(c.Request.Context())
	if errors.Is(err, ErrNoDefaultRules) {
		common.Fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Error("failed to load window rules", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load window rules")
		return
	}
	common.Success(c, http.StatusOK, rules)
}

// PutWindowRules stores the default rules
// PUT /v0/menus/window-rules
func (h *Handler) PutWindowRules(c *gin.Context) {
	var rules WindowRules
	if err := c.ShouldBindJSON(&rules); err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := rules.Validate(); err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.repo.SetWindowRules(c.Request.Context(), rules); err != nil {
		logger.Error("failed to store window rules", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to store window rules")
		return
	}
	logger.Info("default window rules updated", "start", rules.Start.String(), "end", rules.End.String())
	common.Success(c, http.StatusOK, rules)
}

func (h *Handler) respond(m *Menu) MenuResponse {
	return MenuResponse{
		Menu:      *m,
		Accepting: m.Window.Accepting(),
		Open:      m.Window.IsOpen(h.now()),
	}
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
