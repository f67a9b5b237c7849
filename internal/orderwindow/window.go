package orderwindow

import (
	"LunchAPI/internal/clock"
	"time"
)

// Window is the span during which orders for one service date are accepted.
// It is derived from the menu's rules and never stored on its own.
type Window struct {
	ServiceDate time.Time `json:"serviceDate"`
	OrderStart  time.Time `json:"orderStart"`
	OrderEnd    time.Time `json:"orderEnd"`
}

// ResolveInstant applies a single rule to a service date.
//
// All arithmetic is done on calendar dates in serviceDate's location and the
// rule's clock time is then placed on the resulting day. No timezone
// conversion happens here; the caller owns which location the date is in.
func ResolveInstant(serviceDate time.Time, rule Rule) (time.Time, error) {
	if err := rule.Validate(); err != nil {
		return time.Time{}, err
	}

	anchor := clock.DateOf(serviceDate)
	if rule.Anchor == AnchorWeekOfService {
		anchor = clock.MondayOf(anchor)
	}

	return clock.At(clock.AddDays(anchor, -rule.OffsetDays()), rule.ClockTime), nil
}

// Resolve computes the order window for a service date from its start and end
// rules. The rules are resolved independently and no ordering between them is
// enforced: a window whose end is not after its start simply never accepts
// orders (see Accepting).
func Resolve(serviceDate time.Time, start, end Rule) (Window, error) {
	orderStart, err := ResolveInstant(serviceDate, start)
	if err != nil {
		return Window{}, err
	}
	orderEnd, err := ResolveInstant(serviceDate, end)
	if err != nil {
		return Window{}, err
	}

	return Window{
		ServiceDate: clock.DateOf(serviceDate),
		OrderStart:  orderStart,
		OrderEnd:    orderEnd,
	}, nil
}

// Accepting reports whether the window can accept any order at all.
func (w Window) Accepting() bool {
	return w.OrderEnd.After(w.OrderStart)
}

// IsOpen reports whether at falls inside [OrderStart, OrderEnd).
func (w Window) IsOpen(at time.Time) bool {
	if !w.Accepting() {
		return false
	}
	return !at.Before(w.OrderStart) && at.Before(w.OrderEnd)
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
