package orders

import (
	"LunchAPI/internal/report"
)

type OrderItemRequest struct {
	ServiceDate string           `json:"serviceDate" binding:"required"`
	EaterKind   report.EaterKind `json:"eaterKind" binding:"required,oneof=student staff"`
	EaterID     string           `json:"eaterId" binding:"required"`
	Item        string           `json:"item" binding:"required"`
	Quantity    int              `json:"quantity" binding:"omitempty,min=1"`
}

type PlaceOrderRequest struct {
	PlacedBy string             `json:"placedBy" binding:"required"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Rejection explains why one line of an order was refused
type Rejection struct {
	Index       int    `json:"index"`
	ServiceDate string `json:"serviceDate"`
	Reason      string `json:"reason"`
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
