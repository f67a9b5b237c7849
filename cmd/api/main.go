package main

import (
	"LunchAPI/internal/auth"
	"LunchAPI/internal/common"
	"LunchAPI/internal/databases"
	"LunchAPI/internal/env"
	"LunchAPI/internal/logger"
	"LunchAPI/internal/v0/lunchtimes"
	"LunchAPI/internal/v0/menu"
	"LunchAPI/internal/v0/orders"
	"LunchAPI/internal/v0/reports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	if err := logger.Init(logger.Config{
		Level: env.GetEnv(env.EnvLogLevel, "info"),
		File:  env.GetEnv(env.EnvLogFile, ""),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc := env.GetLocation(env.EnvSchoolTimezone)
	logger.Info("school time zone", "tz", loc.String())

	// Lunch database
	lunchDB, err := databases.OpenAndMigrate(env.GetEnv(env.EnvLunchDBPath, env.DefaultLunchDBPath), databases.Lunch)
	if err != nil {
		logger.Fatal("failed to open lunch database", "err", err)
	}
	defer lunchDB.Close()

	// Auth database
	authDB, err := databases.OpenAndMigrate(env.GetEnv(env.EnvAuthDBPath, env.DefaultAuthDBPath), databases.Auth)
	if err != nil {
		logger.Fatal("failed to open auth database", "err", err)
	}
	defer authDB.Close()

	// Initialize auth components
	authRepo := auth.NewRepository(authDB)
	tokenStore := auth.NewTokenStore(authRepo)
	usageTracker := auth.NewUsageTracker(authRepo)
	authMiddleware := auth.NewMiddleware(tokenStore, usageTracker)
	authHandler := auth.NewHandler(tokenStore)

	// Initialize lunch components
	menuRepo := menu.NewRepository(lunchDB, loc)
	menuHandler := menu.NewHandler(menuRepo, loc)

	orderRepo := orders.NewRepository(lunchDB, loc)
	orderHandler := orders.NewHandler(orderRepo, menuRepo, loc)

	lunchRepo := lunchtimes.NewRepository(lunchDB)
	lunchHandler := lunchtimes.NewHandler(lunchRepo)

	reportHandler := reports.NewHandler(reports.NewService(lunchRepo, orderRepo), loc)

	statusHandler := common.NewStatusHandler(map[string]*sql.DB{
		databases.Lunch: lunchDB,
		databases.Auth:  authDB,
	})

	gin.SetMode(env.GetEnv(env.EnvGinMode, gin.ReleaseMode))
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware())

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, statusHandler)

	// Token administration (admin scope)
	auth.RegisterRoutes(global, authHandler, authMiddleware)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		menu.RegisterRoutes(v0Group, menuHandler, authMiddleware)
		orders.RegisterRoutes(v0Group, orderHandler, authMiddleware)
		lunchtimes.RegisterRoutes(v0Group, lunchHandler, authMiddleware)
		reports.RegisterRoutes(v0Group, reportHandler, authMiddleware)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.GetInt(env.EnvPort, env.DefaultPort)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal("failed to listen", "addr", srv.Addr, "err", err)
	}
	logger.Info("listening", "addr", srv.Addr)

	if err := serve(ctx, srv, ln, usageTracker); err != nil {
		logger.Error("server stopped with an error", "err", err)
	}
}

// serve runs srv until ctx is done. In-flight requests are drained before
// the usage tracker is stopped, so their token usage is still written.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, usage *auth.UsageTracker) error {
	usage.Start(context.Background())
	defer usage.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	// Graceful shutdown handling
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

/*
This project is the lunch ordering backend API for the OpenSourceDUTH team. Meal-service scheduling, lunch time resolution and service reports for the school cafeteria portal.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
