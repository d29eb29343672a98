package models

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// Weather holds the categorical conditions recorded for the day. Values come
// from the form vocabularies but are stored verbatim.
type Weather struct {
	Temperature   string `json:"temperature"`
	Sky           string `json:"sky"`
	Precipitation string `json:"precipitation"`
	Wind          string `json:"wind"`
}

// WorkingHours are wall-clock strings (HH:MM). Start may exceed end; overnight
// shifts are accepted as-is.
type WorkingHours struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Task struct {
	Description string   `json:"description"`
	Equipment   []string `json:"equipment,omitempty"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
}

// Record is one daily site diary entry, the core persisted entity. ID is
// assigned at creation and immutable; CreatedAt is set on first persistence;
// LastModified is refreshed by every store write.
type Record struct {
	ID           string       `json:"id"`
	ProjectTitle string       `json:"projectTitle"`
	ContractID   string       `json:"contractId"`
	SiteLocation string       `json:"siteLocation"`
	Date         string       `json:"date"` // YYYY-MM-DD
	Title        string       `json:"title"`
	Weather      Weather      `json:"weather"`
	WorkingHours WorkingHours `json:"workingHours"`
	Progress     string       `json:"progress"`
	Safety       string       `json:"safety"`
	Materials    string       `json:"materials"`
	Equipment    string       `json:"equipment"`
	Labor        string       `json:"labor"`
	Issues       string       `json:"issues"`
	NextSteps    string       `json:"nextSteps"`
	Tasks        []Task       `json:"tasks"`
	Notes        string       `json:"notes"`
	ImageURLs    []string     `json:"imageUrls,omitempty"`
	Signature    string       `json:"signature,omitempty"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastModified time.Time    `json:"lastModified"`
	CreatedBy    string       `json:"createdBy,omitempty"`
}
