package main

import (
	"LunchAPI/internal/cli"
	"LunchAPI/internal/env"
	"LunchAPI/internal/logger"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

var CLI struct {
	Version  kong.VersionFlag
	LunchDB  string `help:"Lunch database path." type:"path" env:"LUNCH_DB_PATH" default:"${lunch_db}"`
	AuthDB   string `help:"Auth database path." type:"path" env:"AUTH_DB_PATH" default:"${auth_db}"`
	Timezone string `help:"School time zone (IANA name)." env:"SCHOOL_TIMEZONE"`
	LogLevel string `help:"Log level." env:"LOG_LEVEL" default:"warn" enum:"debug,info,warn,error"`

	Seed   cli.SeedCmd   `cmd:"" help:"Import a school year from YAML."`
	Report cli.ReportCmd `cmd:"" help:"Print the lunch service report for a day."`
	Token  struct {
		Issue  cli.TokenIssueCmd  `cmd:"" help:"Issue an API token."`
		Revoke cli.TokenRevokeCmd `cmd:"" help:"Revoke an API token."`
		List   cli.TokenListCmd   `cmd:"" help:"List API tokens."`
	} `cmd:"" help:"Manage API tokens."`
}

func main() {
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("lunchctl"),
		kong.Description("School lunch administration"),
		kong.UsageOnError(),
		kong.Vars{
			"version":  "v0.1.0",
			"lunch_db": env.DefaultLunchDBPath,
			"auth_db":  env.DefaultAuthDBPath,
		},
	)

	if err := logger.Init(logger.Config{Level: CLI.LogLevel, Prefix: "lunchctl"}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loc := time.Local
	if CLI.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(CLI.Timezone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown time zone %q: %v\n", CLI.Timezone, err)
			os.Exit(1)
		}
	}

	appCtx := &cli.Context{
		LunchDBPath: CLI.LunchDB,
		AuthDBPath:  CLI.AuthDB,
		Location:    loc,
		Out:         os.Stdout,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
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
