package cli

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/v0/lunchtimes"
	"LunchAPI/internal/v0/orders"
	"LunchAPI/internal/v0/reports"
	"context"
	"fmt"
	"time"
)

type ReportCmd struct {
	Date    string `help:"Service date (YYYY-MM-DD or 'today')." default:"today"`
	Year    string `help:"School year id." required:""`
	Teacher string `help:"Only this teacher's classroom."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	var date time.Time
	if c.Date == "today" {
		date = clock.DateOf(ctx.now().In(ctx.location()))
	} else {
		var err error
		date, err = clock.ParseDate(c.Date, ctx.location())
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
	}

	db, err := ctx.openLunch()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := reports.NewService(lunchtimes.NewRepository(db), orders.NewRepository(db, ctx.location()))
	rep, err := svc.Build(context.Background(), date, c.Year, c.Teacher)
	if err != nil {
		return err
	}

	fmt.Fprint(ctx.Out, RenderReport(rep))
	return nil
}
