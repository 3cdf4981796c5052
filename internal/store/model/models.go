package model

import (
	"database/sql"
	"time"
)

// Model is a registry entry. Name is always "provider/model".
type Model struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RoutingPolicy redirects prompts addressed to ModelName that match RegexPattern.
type RoutingPolicy struct {
	ID            int64     `db:"id" json:"id"`
	ModelName     string    `db:"model_name" json:"model_name"`
	RegexPattern  string    `db:"regex_pattern" json:"regex_pattern"`
	RedirectModel string    `db:"redirect_model" json:"redirect_model"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// RouteLog captures a single routing decision.
type RouteLog struct {
	ID                string        `db:"id" json:"id"`
	RequestID         string        `db:"request_id" json:"request_id"`
	RequestedProvider string        `db:"requested_provider" json:"requested_provider"`
	RequestedModel    string        `db:"requested_model" json:"requested_model"`
	ResolvedProvider  string        `db:"resolved_provider" json:"resolved_provider"`
	ResolvedModel     string        `db:"resolved_model" json:"resolved_model"`
	PolicyID          sql.NullInt64 `db:"policy_id" json:"policy_id"`
	HasFile           bool          `db:"has_file" json:"has_file"`
	Outcome           string        `db:"outcome" json:"outcome"` // routed, or the failure reason
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
}
