package common

import (
	"LunchAPI/internal/logger"
	envelope "LunchAPI/internal/v0/common"
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	InternalServerLatency string            `json:"internal_server_latency"`
	Uptime                string            `json:"uptime"`
	Databases             map[string]string `json:"databases"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// StatusHandler reports uptime and pings the named databases
type StatusHandler struct {
	dbs map[string]*sql.DB
}

func NewStatusHandler(dbs map[string]*sql.DB) *StatusHandler {
	return &StatusHandler{dbs: dbs}
}

// Ping Logic
func ping(ctx context.Context, db *sql.DB) (time.Duration, error) {
	start := time.Now()
	err := db.PingContext(ctx)
	return time.Since(start), err
}

func (h *StatusHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	data := StatusResponse{
		Uptime:    uptime().Truncate(time.Second).String(),
		Databases: make(map[string]string, len(h.dbs)),
	}

	var slowest time.Duration
	healthy := true
	for name, db := range h.dbs {
		d, err := ping(ctx, db)
		if err != nil {
			logger.Warn("database ping failed", "db", name, "err", err)
			data.Databases[name] = "unavailable"
			healthy = false
			continue
		}
		data.Databases[name] = "ok"
		if d > slowest {
			slowest = d
		}
	}
	data.InternalServerLatency = slowest.String()

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, envelope.CreateAPIResponse(data, []string{"database unavailable"}, c.GetString(logger.RequestIDKey)))
		return
	}
	envelope.Success(c, http.StatusOK, data)
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
