package report

import (
	"LunchAPI/internal/clock"
	"strings"
	"time"
)

// EaterKind tells whether a meal is for a student or a staff member
type EaterKind string

const (
	EaterStudent EaterKind = "student"
	EaterStaff   EaterKind = "staff"
)

// Eater identifies who a meal is served to
type Eater struct {
	Kind EaterKind `json:"kind"`
	ID   string    `json:"id"`
}

// Meal is one line item of a placed order
type Meal struct {
	ServiceDate time.Time `json:"serviceDate"`
	Eater       Eater     `json:"eater"`
	Item        string    `json:"item"`
	Quantity    int       `json:"quantity"`
}

// Servings counts a meal line at least once.
func (m Meal) Servings() int {
	if m.Quantity < 1 {
		return 1
	}
	return m.Quantity
}

// Order is a placed order; its items may span several service dates
type Order struct {
	ID       string `json:"id"`
	PlacedBy string `json:"placedBy"`
	Items    []Meal `json:"items"`
}

// Student is a roster entry for a student
type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s Student) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// StaffMember is a roster entry for an adult eating at school
type StaffMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Roster is the people a report can name
type Roster struct {
	Students []Student     `json:"students"`
	Staff    []StaffMember `json:"staff"`
}

// Teacher is a teacher directory entry. Teacher ids are staff ids.
type Teacher struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// GroupKind is the section of the report a group belongs to
type GroupKind string

const (
	GroupClassroom GroupKind = "classroom"
	GroupGrade     GroupKind = "grade"
	GroupOther     GroupKind = "other"
	GroupStaff     GroupKind = "staff"
)

const (
	OtherStudentsTitle = "Students With Unassigned Lunch Times"
	StaffTitle         = "Staff Lunches"
)

// Participant is one row of a group: a person and every meal they are
// served on the report date
type Participant struct {
	ID          string    `json:"id"`
	Kind        EaterKind `json:"kind"`
	DisplayName string    `json:"displayName"`
	Meals       []Meal    `json:"meals"`
}

// Group is one titled section of a service report
type Group struct {
	Kind         GroupKind     `json:"kind"`
	Key          string        `json:"key,omitempty"`
	Title        string        `json:"title"`
	Time         *clock.Time   `json:"time,omitempty"`
	Participants []Participant `json:"participants"`
}
