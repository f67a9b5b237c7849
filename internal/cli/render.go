package cli

import (
	"LunchAPI/internal/report"
	"LunchAPI/internal/v0/reports"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	footerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240")).
			MarginTop(1)
)

// RenderReport lays out a service report for the terminal.
func RenderReport(rep *reports.Report) string {
	var b strings.Builder

	title := "Lunch service " + rep.Date
	if rep.TeacherID != "" {
		title += " (classroom " + rep.TeacherID + ")"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(rep.Groups) == 0 {
		b.WriteString("\nNo meals ordered\n")
		return b.String()
	}

	for _, g := range rep.Groups {
		header := g.Title
		if g.Time != nil {
			header += " " + timeStyle.Render("@ "+g.Time.String())
		}
		b.WriteString(groupStyle.Render(header))
		b.WriteString("\n")
		for _, p := range g.Participants {
			fmt.Fprintf(&b, "  %-28s %s\n", p.DisplayName, describeMeals(p.Meals))
		}
	}

	var footer strings.Builder
	for _, gt := range rep.Totals.Groups {
		fmt.Fprintf(&footer, "%-40s %3d people %3d meals\n", gt.Title, gt.Participants, gt.Meals)
	}
	fmt.Fprintf(&footer, "%-40s %3d people %3d meals", "Total", rep.Totals.Participants, rep.Totals.Meals)
	b.WriteString(footerStyle.Render(footer.String()))
	b.WriteString("\n")
	return b.String()
}

func describeMeals(meals []report.Meal) string {
	parts := make([]string, 0, len(meals))
	for _, m := range meals {
		if n := m.Servings(); n > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", m.Item, n))
			continue
		}
		parts = append(parts, m.Item)
	}
	return strings.Join(parts, ", ")
}
