package menu

import (
	"LunchAPI/internal/orderwindow"
)

type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// Menu is a daily menu with the ordering window it was scheduled with.
// Window holds the instants stored when the menu was scheduled.
type Menu struct {
	ID          int64              `json:"id"`
	ServiceDate string             `json:"serviceDate"`
	Items       []MenuItem         `json:"items"`
	StartRule   orderwindow.Rule   `json:"startRule"`
	EndRule     orderwindow.Rule   `json:"endRule"`
	Window      orderwindow.Window `json:"window"`
}

// HasItem reports whether an item of that name is on the menu
func (m *Menu) HasItem(name string) bool {
	for _, it := range m.Items {
		if it.Name == name {
			return true
		}
	}
	return false
}

// MenuResponse adds the window state at request time
type MenuResponse struct {
	Menu
	Accepting bool `json:"accepting"`
	Open      bool `json:"open"`
}

// WindowRules are the school's default start and end rules
type WindowRules struct {
	Start orderwindow.Rule `json:"start"`
	End   orderwindow.Rule `json:"end"`
}

// Validate checks both rules
func (w WindowRules) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	return w.End.Validate()
}

type CreateMenuRequest struct {
	ServiceDate string            `json:"serviceDate" binding:"required"`
	Items       []MenuItem        `json:"items" binding:"required,min=1,dive"`
	StartRule   *orderwindow.Rule `json:"startRule"`
	EndRule     *orderwindow.Rule `json:"endRule"`
}

//   This project is the lunch ordering backend API for the OpenSourceDUTH team. Meal-service scheduling, lunch time resolution and service reports for the school cafeteria portal.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
