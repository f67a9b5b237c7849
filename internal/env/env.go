package env

import (
	"os"
	"strconv"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetLocation loads an IANA time zone name. Unset, empty or unknown names
// fall back to time.Local.
func GetLocation(key string) *time.Location {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if loc, err := time.LoadLocation(value); err == nil {
			return loc
		}
	}
	return time.Local
}

// Server configuration keys
const (
	EnvPort    = "PORT"
	EnvGinMode = "GIN_MODE"

	// Databases
	EnvLunchDBPath = "LUNCH_DB_PATH"
	EnvAuthDBPath  = "AUTH_DB_PATH"

	// Service dates, order windows and lunch times are read in this zone
	EnvSchoolTimezone = "SCHOOL_TIMEZONE"

	// Logging
	EnvLogLevel = "LOG_LEVEL"
	EnvLogFile  = "LOG_FILE"
)

// Defaults used when a key is unset
const (
	DefaultPort        = 9237
	DefaultLunchDBPath = "./internal/databases/lunch.db"
	DefaultAuthDBPath  = "./internal/databases/auth.db"
)

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
