package reports

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/logger"
	"LunchAPI/internal/v0/common"
	"LunchAPI/internal/v0/lunchtimes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loc     *time.Location
}

func NewHandler(service *Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{service: service, loc: loc}
}

// GetReport builds the service report for ?date=&year=, or one classroom
// with &teacher=
// GET /v0/reports
func (h *Handler) GetReport(c *gin.Context) {
	date, err := clock.ParseDate(c.Query("date"), h.loc)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD")
		return
	}
	year := c.Query("year")
	if year == "" {
		common.Fail(c, http.StatusBadRequest, "year is required")
		return
	}

	rep, err := h.service.Build(c.Request.Context(), date, year, c.Query("teacher"))
	switch {
	case errors.Is(err, lunchtimes.ErrNotFound), errors.Is(err, ErrTeacherNotFound):
		common.Fail(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		logger.Error("failed to build service report", "date", c.Query("date"), "year", year, "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to build service report")
		return
	}
	common.Success(c, http.StatusOK, rep)
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
