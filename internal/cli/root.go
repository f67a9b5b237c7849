package cli

import (
	"LunchAPI/internal/databases"
	"database/sql"
	"io"
	"time"
)

// Context is shared by every lunchctl command
type Context struct {
	LunchDBPath string
	AuthDBPath  string
	Location    *time.Location
	Out         io.Writer
	Now         func() time.Time
}

func (c *Context) openLunch() (*sql.DB, error) {
	return databases.OpenAndMigrate(c.LunchDBPath, databases.Lunch)
}

func (c *Context) openAuth() (*sql.DB, error) {
	return databases.OpenAndMigrate(c.AuthDBPath, databases.Auth)
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Context) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}
