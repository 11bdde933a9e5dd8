// Package models defines the domain types for the three journal collections.
//
// The JSON field names match the on-disk collection format exactly; the
// data files are the persistence contract, so tags here must not change.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateFormat is the calendar-date layout used by all collections.
const DateFormat = "2006-01-02"

// Emotions enumerates the selectable emotion tags. Memory.Emotion is an
// ordered sequence, not a set: duplicates are preserved as stored.
var Emotions = []string{"Happy", "Sad", "Excited", "Scared", "Angry", "Grateful"}

// MemberRelations enumerates how a family member relates to the journal
// owner. The list is carried over verbatim from the original roster form.
var MemberRelations = []string{
	"Myself", "Parent", "Sibling", "Spouse", "Child", "Cousin",
	"Father", "Mother", "Bhabi", "niece", "nephew", "Other",
}

// EdgeTypes enumerates relationship-edge labels between two members.
var EdgeTypes = []string{"parent", "child", "spouse", "sibling"}

// MealTimes enumerates food-log meal slots.
var MealTimes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// Memory is a single journal entry.
//
// People holds family member names, not ids: a weak reference that goes
// stale if the member is renamed. That is intentional and preserved.
type Memory struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Emotion     []string `json:"emotion"`
	Tags        []string `json:"tags"`
	People      []string `json:"people"`
	Location    string   `json:"location"`
}

// RecordID implements store.Record.
func (m Memory) RecordID() string { return m.ID }

// Validate checks field constraints at the store boundary.
func (m Memory) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date, validation.Required, validation.Date(DateFormat)),
		validation.Field(&m.Emotion, validation.Each(validation.In(toAny(Emotions)...))),
	)
}

// RelationEdge is a directed, typed edge from one family member to
// another. To references a member id and may dangle after the target is
// deleted; consumers must filter, never assume existence.
type RelationEdge struct {
	To   string `json:"to"`
	Type string `json:"type"`
}

// Validate checks the edge type and target.
func (e RelationEdge) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.To, validation.Required),
		validation.Field(&e.Type, validation.Required, validation.In(toAny(EdgeTypes)...)),
	)
}

// FamilyMember is an entry in the family roster.
//
// Name doubles as a human-readable key referenced by Memory.People and
// FoodLog.Name. It is not enforced unique.
type FamilyMember struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Relation  string         `json:"relation"`
	Age       int            `json:"age"`
	Hobbies   []string       `json:"hobbies"`
	Photo     string         `json:"photo"`
	Relations []RelationEdge `json:"relations,omitempty"`
}

// RecordID implements store.Record.
func (f FamilyMember) RecordID() string { return f.ID }

// Validate checks field constraints at the store boundary.
func (f FamilyMember) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Relation, validation.Required, validation.In(toAny(MemberRelations)...)),
		validation.Field(&f.Age, validation.Min(0), validation.Max(120)),
		validation.Field(&f.Relations),
	)
}

// FoodLog records one food intake and any reaction to it. An empty
// Reaction means no reaction and excludes the entry from allergen counts.
type FoodLog struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Food     string `json:"food"`
	Reaction string `json:"reaction"`
	MealTime string `json:"meal_time"`
	Date     string `json:"date"`
}

// RecordID implements store.Record.
func (l FoodLog) RecordID() string { return l.ID }

// Validate checks field constraints at the store boundary.
func (l FoodLog) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
		validation.Field(&l.Name, validation.Required),
		validation.Field(&l.Food, validation.Required),
		validation.Field(&l.MealTime, validation.Required, validation.In(toAny(MealTimes)...)),
		validation.Field(&l.Date, validation.Required, validation.Date(DateFormat)),
	)
}

// Today returns the current calendar date in the collection format.
func Today() string {
	return time.Now().Format(DateFormat)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
