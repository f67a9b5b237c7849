package report

// GroupTotal counts one group for the report footer
type GroupTotal struct {
	Title        string `json:"title"`
	Participants int    `json:"participants"`
	Meals        int    `json:"meals"`
}

// Totals summarises a built report
type Totals struct {
	Groups       []GroupTotal `json:"groups"`
	Participants int          `json:"participants"`
	Meals        int          `json:"meals"`
}

// Summarise counts participants and servings per group and overall.
func Summarise(groups []Group) Totals {
	totals := Totals{Groups: make([]GroupTotal, 0, len(groups))}
	for _, g := range groups {
		gt := GroupTotal{Title: g.Title, Participants: len(g.Participants)}
		for _, p := range g.Participants {
			for _, m := range p.Meals {
				gt.Meals += m.Servings()
			}
		}
		totals.Groups = append(totals.Groups, gt)
		totals.Participants += gt.Participants
		totals.Meals += gt.Meals
	}
	return totals
}
