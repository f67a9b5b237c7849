package main

import (
	"LunchAPI/internal/databases"
	"LunchAPI/internal/env"
	"LunchAPI/internal/logger"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	path := flag.String("path", databases.Lunch, "migration set to apply: lunch or auth")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(logger.Config{Level: env.GetEnv(env.EnvLogLevel, "info"), Prefix: "migrate"}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	var file string
	switch *path {
	case databases.Lunch:
		file = env.GetEnv(env.EnvLunchDBPath, env.DefaultLunchDBPath)
	case databases.Auth:
		file = env.GetEnv(env.EnvAuthDBPath, env.DefaultAuthDBPath)
	default:
		logger.Fatal("unknown migration set", "path", *path)
	}

	db, err := databases.OpenAndMigrate(file, *path)
	if err != nil {
		logger.Fatal("migration failed", "path", *path, "err", err)
	}
	defer db.Close()

	logger.Info("Database migration complete", "path", *path, "file", file)
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
