package orderwindow

import (
	"LunchAPI/internal/clock"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is returned for rules the resolver refuses to interpret.
var ErrInvalidRule = errors.New("invalid order window rule")

// Unit is the unit of a rule's count
type Unit string

const (
	UnitDays  Unit = "DAYS"
	UnitWeeks Unit = "WEEKS"
)

// Anchor is the date a rule counts back from
type Anchor string

const (
	// AnchorDayOfService counts back from the service date itself
	AnchorDayOfService Anchor = "DAY_OF_SERVICE"
	// AnchorWeekOfService counts back from the Monday of the service date's week
	AnchorWeekOfService Anchor = "WEEK_OF_SERVICE"
)

// Rule describes an instant relative to a service date, e.g.
// "2 weeks before the week of service at 08:00".
type Rule struct {
	Count     int        `json:"count" yaml:"count"`
	Unit      Unit       `json:"unit" yaml:"unit"`
	Anchor    Anchor     `json:"anchor" yaml:"anchor"`
	ClockTime clock.Time `json:"clockTime" yaml:"clockTime"`
}

// Validate rejects negative counts and unknown units or anchors.
func (r Rule) Validate() error {
	if r.Count < 0 {
		return fmt.Errorf("%w: count must not be negative (got %d)", ErrInvalidRule, r.Count)
	}
	switch r.Unit {
	case UnitDays, UnitWeeks:
	default:
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidRule, r.Unit)
	}
	switch r.Anchor {
	case AnchorDayOfService, AnchorWeekOfService:
	default:
		return fmt.Errorf("%w: unknown anchor %q", ErrInvalidRule, r.Anchor)
	}
	if _, err := clock.New(r.ClockTime.Hour, r.ClockTime.Minute); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return nil
}

// UnmarshalJSON decodes a rule written by a client. Unit and anchor names
// are accepted in any case; a missing clockTime is an error rather than
// midnight.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var raw struct {
		Count     int         `json:"count"`
		Unit      string      `json:"unit"`
		Anchor    string      `json:"anchor"`
		ClockTime *clock.Time `json:"clockTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ClockTime == nil {
		return fmt.Errorf("%w: clockTime is required", ErrInvalidRule)
	}
	*r = Rule{
		Count:     raw.Count,
		Unit:      Unit(strings.ToUpper(strings.TrimSpace(raw.Unit))),
		Anchor:    Anchor(strings.ToUpper(strings.TrimSpace(raw.Anchor))),
		ClockTime: *raw.ClockTime,
	}
	return nil
}

// OffsetDays converts the rule's count to calendar days.
func (r Rule) OffsetDays() int {
	if r.Unit == UnitWeeks {
		return r.Count * 7
	}
	return r.Count
}

func (r Rule) String() string {
	unit := strings.ToLower(string(r.Unit))
	anchor := "the day of service"
	if r.Anchor == AnchorWeekOfService {
		anchor = "the week of service"
	}
	return fmt.Sprintf("%d %s before %s at %s", r.Count, unit, anchor, r.ClockTime)
}

// ParseUnit accepts unit names case-insensitively.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case UnitDays, UnitWeeks:
		return u, nil
	}
	return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidRule, s)
}

// ParseAnchor accepts anchor names case-insensitively.
func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(strings.ToUpper(strings.TrimSpace(s)))
	switch a {
	case AnchorDayOfService, AnchorWeekOfService:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown anchor %q", ErrInvalidRule, s)
}
