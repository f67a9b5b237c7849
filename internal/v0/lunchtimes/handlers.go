package lunchtimes

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/logger"
	"LunchAPI/internal/lunchtime"
	"LunchAPI/internal/v0/common"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResolvedDay is one weekday of a student's lunch time
type ResolvedDay struct {
	Day        string           `json:"day"`
	Time       *clock.Time      `json:"time"`
	Determined bool             `json:"determined"`
	Reason     lunchtime.Reason `json:"reason,omitempty"`
}

type StudentWeek struct {
	StudentID   string        `json:"studentId"`
	DisplayName string        `json:"displayName"`
	Days        []ResolvedDay `json:"days"`
}

type FlaggedStudent struct {
	StudentID   string `json:"studentId"`
	DisplayName string `json:"displayName"`
}

type ViolationResponse struct {
	Grade     string `json:"grade,omitempty"`
	TeacherID string `json:"teacherId,omitempty"`
	Day       string `json:"day"`
	Time      string `json:"time"`
}

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// loadConfig writes the error response itself and returns nil on failure
func (h *Handler) loadConfig(c *gin.Context) *lunchtime.Config {
	year := c.Param("year")
	cfg, err := h.repo.LoadConfig(c.Request.Context(), year)
	if errors.Is(err, ErrNotFound) {
		common.Fail(c, http.StatusNotFound, err.Error())
		return nil
	}
	if err != nil {
		logger.Error("failed to load lunch time configuration", "year", year, "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load lunch time configuration")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("lunch time configuration has problems", "year", year, "err", err)
	}
	return cfg
}

// GetStudentWeek resolves Monday to Friday for one student enrolled in the year
// GET /v0/lunchtimes/:year/students/:id
func (h *Handler) GetStudentWeek(c *gin.Context) {
	cfg := h.loadConfig(c)
	if cfg == nil {
		return
	}

	roster, err := h.repo.LoadYearRoster(c.Request.Context(), cfg.SchoolYearID)
	if err != nil {
		logger.Error("failed to load roster", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load roster")
		return
	}

	id := c.Param("id")
	week := StudentWeek{StudentID: id}
	found := false
	for _, s := range roster.Students {
		if s.ID == id {
			week.DisplayName = s.DisplayName()
			found = true
			break
		}
	}
	if !found {
		common.Fail(c, http.StatusNotFound, "student not found")
		return
	}

	for _, r := range lunchtime.ResolveWeek(cfg, id) {
		d := ResolvedDay{Day: clock.WeekdayName(r.Day), Determined: r.Determined, Reason: r.Reason}
		if r.Determined {
			t := r.Time
			d.Time = &t
		}
		week.Days = append(week.Days, d)
	}
	common.Success(c, http.StatusOK, week)
}

// GetUndetermined lists enrolled students with an undetermined time on any
// school day
// GET /v0/lunchtimes/:year/undetermined
func (h *Handler) GetUndetermined(c *gin.Context) {
	cfg := h.loadConfig(c)
	if cfg == nil {
		return
	}

	roster, err := h.repo.LoadYearRoster(c.Request.Context(), cfg.SchoolYearID)
	if err != nil {
		logger.Error("failed to load roster", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load roster")
		return
	}

	ids := make([]string, 0, len(roster.Students))
	names := make(map[string]string, len(roster.Students))
	for _, s := range roster.Students {
		ids = append(ids, s.ID)
		names[s.ID] = s.DisplayName()
	}

	flagged := lunchtime.FindUndetermined(cfg, ids)
	students := make([]FlaggedStudent, 0, len(flagged))
	for _, id := range lunchtime.SortedIDs(flagged) {
		students = append(students, FlaggedStudent{StudentID: id, DisplayName: names[id]})
	}
	common.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetCandidates returns the school-wide times for ?day=
// GET /v0/lunchtimes/:year/candidates
func (h *Handler) GetCandidates(c *gin.Context) {
	day, err := clock.ParseWeekday(c.Query("day"))
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.loadConfig(c)
	if cfg == nil {
		return
	}

	common.Success(c, http.StatusOK, gin.H{
		"day":   clock.WeekdayName(day),
		"times": lunchtime.CandidateTimes(cfg, day).Strings(),
	})
}

// GetViolations lists published times that are not in the school-wide pool
// GET /v0/lunchtimes/:year/violations
func (h *Handler) GetViolations(c *gin.Context) {
	cfg := h.loadConfig(c)
	if cfg == nil {
		return
	}

	violations := lunchtime.CheckPublished(cfg)
	out := make([]ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, ViolationResponse{
			Grade:     v.Grade,
			TeacherID: v.TeacherID,
			Day:       clock.WeekdayName(v.Day),
			Time:      v.Time.String(),
		})
	}
	common.Success(c, http.StatusOK, gin.H{"violations": out})
}

//This project is the lunch ordering backend API for the OpenSourceDUTH team. Meal-service scheduling, lunch time resolution and service reports for the school cafeteria portal.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
