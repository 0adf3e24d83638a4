package clinchpad

import "time"

// Pipeline is a named sales funnel containing ordered stages. Pipeline
// names are assumed unique across the account; the server does not
// enforce this, and name lookups deterministically pick the first match.
type Pipeline struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Stage is a step within one pipeline. Stage names are unique only
// within their pipeline.
type Stage struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	PipelineID string `json:"pipeline_id"`
}

// Lead is a tracked deal record. A freshly created lead may have no
// stage yet; Stage is nil in that case.
type Lead struct {
	ID         string         `json:"_id"`
	Name       string         `json:"name"`
	PipelineID string         `json:"pipeline_id"`
	Stage      *Stage         `json:"stage,omitempty"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// Note is a free-text annotation on a lead. The server returns a lead's
// notes in a stable, server-defined order.
type Note struct {
	ID        string    `json:"_id"`
	LeadID    string    `json:"lead_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is a timestamped event record. LeadID is empty for global
// activities with no lead association.
type Activity struct {
	ID         string    `json:"_id"`
	Type       string    `json:"type"`
	PipelineID string    `json:"pipeline_id"`
	LeadID     string    `json:"lead_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is an account member.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Field is a custom field attached to a lead.
type Field struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}
