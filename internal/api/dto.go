package api

import (
	"github.com/sharjeelz/famories/internal/family"
	"github.com/sharjeelz/famories/internal/foodlog"
	"github.com/sharjeelz/famories/internal/models"
)

// UnlockRequest is the request body for opening a session.
type UnlockRequest struct {
	PIN string `json:"pin"`
}

// UnlockResponse carries the minted session token.
type UnlockResponse struct {
	Token string `json:"token"`
}

// MemoryRequest is the request body for creating or updating a memory.
// The id is taken from the URL, never the body.
type MemoryRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Emotion     []string `json:"emotion"`
	Tags        []string `json:"tags"`
	People      []string `json:"people"`
	Location    string   `json:"location"`
}

// MemoryListResponse wraps a memory listing.
type MemoryListResponse struct {
	Memories []models.Memory `json:"memories"`
	Total    int             `json:"total"`
}

// MemberRequest is the request body for creating or updating a family
// member. Relations are managed through the link endpoint on create and
// replaced wholesale on update.
type MemberRequest struct {
	Name      string                `json:"name"`
	Relation  string                `json:"relation"`
	Age       int                   `json:"age"`
	Hobbies   []string              `json:"hobbies"`
	Photo     string                `json:"photo"`
	Relations []models.RelationEdge `json:"relations"`
}

// MemberListResponse wraps a roster listing.
type MemberListResponse struct {
	Members []models.FamilyMember `json:"members"`
	Total   int                   `json:"total"`
}

// LinkRequest is the request body for linking two members.
type LinkRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// GraphResponse wraps the rendered family tree.
type GraphResponse struct {
	Nodes []family.GraphNode `json:"nodes"`
	Edges []family.GraphEdge `json:"edges"`
}

// FoodLogRequest is the request body for creating or updating a food
// log entry.
type FoodLogRequest struct {
	Name     string `json:"name"`
	Food     string `json:"food"`
	Reaction string `json:"reaction"`
	MealTime string `json:"meal_time"`
	Date     string `json:"date"`
}

// FoodLogListResponse wraps a food log listing.
type FoodLogListResponse struct {
	Logs  []models.FoodLog `json:"logs"`
	Total int              `json:"total"`
}

// AllergenResponse wraps the allergen frequency aggregation.
type AllergenResponse struct {
	Allergens []foodlog.AllergenCount `json:"allergens"`
}

// AskRequest is the request body for asking the assistant a question.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the assistant's reply, or a local message when
// the memory collection is empty.
type AskResponse struct {
	Answer string `json:"answer"`
}

// InsightsResponse carries the emotional-patterns summary. Cached is
// true when the summary was served from the session cache after a
// service failure.
type InsightsResponse struct {
	Summary string `json:"summary"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PhotoResponse is returned after a photo upload.
type PhotoResponse struct {
	Photo string `json:"photo"`
	URL   string `json:"url"`
}
