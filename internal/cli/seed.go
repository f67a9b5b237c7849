package cli

import (
	"LunchAPI/internal/seed"
	"context"
	"fmt"
)

type SeedCmd struct {
	File string `help:"School year YAML file." type:"existingfile" required:""`
}

func (c *SeedCmd) Run(ctx *Context) error {
	f, err := seed.Load(c.File)
	if err != nil {
		return err
	}

	db, err := ctx.openLunch()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := seed.Import(context.Background(), db, f)
	if err != nil {
		return fmt.Errorf("import %s: %w", c.File, err)
	}

	fmt.Fprintf(ctx.Out, "Imported school year %s\n", f.SchoolYear.ID)
	fmt.Fprintf(ctx.Out, "  grades: %d, times: %d, staff: %d, students: %d, assignments: %d\n",
		n.Grades, n.Times, n.Staff, n.Students, n.Assignments)
	return nil
}
