package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Historical clients wrote several divergent record shapes: weather carried
// "conditions"/"humidity" instead of sky/precipitation/wind, materials and
// equipment were sometimes structured lists instead of free text, tasks were
// sometimes bare description strings, and timestamps were sometimes
// seconds/nanoseconds pairs. NormalizeRecord folds all of them into the
// canonical Record at the store boundary so every internal component sees one
// shape.

type legacyTimestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

type legacyWeather struct {
	Temperature   string `json:"temperature"`
	Sky           string `json:"sky"`
	Conditions    string `json:"conditions"`
	Precipitation string `json:"precipitation"`
	Humidity      string `json:"humidity"`
	Wind          string `json:"wind"`
}

type legacyItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Hours       float64 `json:"hours"`
}

type legacyRecord struct {
	ID           string          `json:"id"`
	ProjectTitle string          `json:"projectTitle"`
	ContractID   string          `json:"contractId"`
	SiteLocation string          `json:"siteLocation"`
	Date         string          `json:"date"`
	Title        string          `json:"title"`
	Weather      legacyWeather   `json:"weather"`
	WorkingHours WorkingHours    `json:"workingHours"`
	Progress     string          `json:"progress"`
	Safety       string          `json:"safety"`
	Materials    json.RawMessage `json:"materials"`
	Equipment    json.RawMessage `json:"equipment"`
	Labor        string          `json:"labor"`
	Issues       string          `json:"issues"`
	NextSteps    string          `json:"nextSteps"`
	Tasks        json.RawMessage `json:"tasks"`
	Notes        string          `json:"notes"`
	ImageURLs    []string        `json:"imageUrls"`
	Images       []string        `json:"images"`
	Signature    string          `json:"signature"`
	Status       string          `json:"status"`
	CreatedAt    json.RawMessage `json:"createdAt"`
	LastModified json.RawMessage `json:"lastModified"`
	UpdatedAt    json.RawMessage `json:"updatedAt"`
	CreatedBy    string          `json:"createdBy"`
}

// NormalizeRecord parses a raw JSON record in any historical shape and
// returns the canonical form.
func NormalizeRecord(raw []byte) (Record, error) {
	var lr legacyRecord
	if err := json.Unmarshal(raw, &lr); err != nil {
		return Record{}, fmt.Errorf("failed to parse record: %w", err)
	}

	r := Record{
		ID:           lr.ID,
		ProjectTitle: lr.ProjectTitle,
		ContractID:   lr.ContractID,
		SiteLocation: lr.SiteLocation,
		Date:         lr.Date,
		Title:        lr.Title,
		WorkingHours: lr.WorkingHours,
		Progress:     lr.Progress,
		Safety:       lr.Safety,
		Labor:        lr.Labor,
		Issues:       lr.Issues,
		NextSteps:    lr.NextSteps,
		Notes:        lr.Notes,
		ImageURLs:    lr.ImageURLs,
		Signature:    lr.Signature,
		CreatedBy:    lr.CreatedBy,
	}

	r.Weather = Weather{
		Temperature:   lr.Weather.Temperature,
		Sky:           lr.Weather.Sky,
		Precipitation: lr.Weather.Precipitation,
		Wind:          lr.Weather.Wind,
	}
	if r.Weather.Sky == "" {
		r.Weather.Sky = lr.Weather.Conditions
	}

	if len(r.ImageURLs) == 0 {
		r.ImageURLs = lr.Images
	}

	switch Status(lr.Status) {
	case StatusSubmitted:
		r.Status = StatusSubmitted
	default:
		r.Status = StatusDraft
	}

	r.Materials = flattenItemField(lr.Materials)
	r.Equipment = flattenItemField(lr.Equipment)

	tasks, err := normalizeTasks(lr.Tasks)
	if err != nil {
		return Record{}, err
	}
	r.Tasks = tasks

	r.CreatedAt = normalizeTimestamp(lr.CreatedAt)
	r.LastModified = normalizeTimestamp(lr.LastModified)
	if r.LastModified.IsZero() {
		r.LastModified = normalizeTimestamp(lr.UpdatedAt)
	}

	return r, nil
}

// flattenItemField accepts either a plain string or a list of
// {description, quantity, unit} items and yields free text.
func flattenItemField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []legacyItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}
	out := ""
	for i, item := range items {
		if i > 0 {
			out += "; "
		}
		out += item.Description
		if item.Quantity != 0 {
			out += fmt.Sprintf(" (%g %s)", item.Quantity, item.Unit)
		}
	}
	return out
}

// normalizeTasks accepts either the structured task list or the older bare
// string list.
func normalizeTasks(raw json.RawMessage) ([]Task, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}
	var descriptions []string
	if err := json.Unmarshal(raw, &descriptions); err != nil {
		return nil, fmt.Errorf("unrecognized task list shape: %s", string(raw))
	}
	for _, d := range descriptions {
		tasks = append(tasks, Task{Description: d})
	}
	return tasks, nil
}

// normalizeTimestamp accepts RFC3339 strings, epoch milliseconds, or the
// {seconds, nanoseconds} pair written by older clients.
func normalizeTimestamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		return time.Time{}
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	var lt legacyTimestamp
	if err := json.Unmarshal(raw, &lt); err == nil && lt.Seconds != 0 {
		return time.Unix(lt.Seconds, lt.Nanoseconds).UTC()
	}
	return time.Time{}
}
