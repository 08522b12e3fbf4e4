package types

import "time"

// StateKey is the well-known key the session state record is stored under
const StateKey = "redactState"

// EntityMapping pairs a placeholder token with the original value(s) it replaced.
// Descriptive fields are optional and only round-tripped back to the service.
type EntityMapping struct {
	Key        string   `json:"key" yaml:"key"`
	Values     []string `json:"values" yaml:"values"`
	EntityType string   `json:"type,omitempty" yaml:"type,omitempty"`
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Category   string   `json:"category,omitempty" yaml:"category,omitempty"`
	Detail     string   `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// SessionState is the single record shared by the redact and restore views
type SessionState struct {
	OriginalText   string          `json:"originalText" yaml:"originalText"`
	AnonymizedText string          `json:"anonymizedText" yaml:"anonymizedText"`
	Entities       []EntityMapping `json:"entities" yaml:"entities"`
	EntityTypes    []string        `json:"entityTypes" yaml:"entityTypes"`
}

// HasMappings reports whether the state carries a usable entity mapping
func (s *SessionState) HasMappings() bool {
	return s != nil && len(s.Entities) > 0
}

// ConfigResponse is the body of GET /api/v1/config
type ConfigResponse struct {
	EntityTypes []string `json:"entity_types"`
}

// AnonymizeRequest is the body of POST /api/v1/anonymize
type AnonymizeRequest struct {
	Text        string   `json:"text"`
	EntityTypes []string `json:"entity_types"`
}

// AnonymizeResponse is the success body of POST /api/v1/anonymize
type AnonymizeResponse struct {
	AnonymizedText string          `json:"anonymized_text"`
	Entities       []EntityMapping `json:"entities"`
}

// RestoreRequest is the body of POST /api/v1/restore
type RestoreRequest struct {
	AnonymizedText string          `json:"anonymized_text"`
	Entities       []EntityMapping `json:"entities"`
}

// RestoreResponse is the success body of POST /api/v1/restore
type RestoreResponse struct {
	RestoredText string `json:"restored_text"`
}

// ErrorResponse is the optional error body returned by the service
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Response holds a completed HTTP exchange with the service
type Response struct {
	Status     int           `json:"status"`
	StatusText string        `json:"statusText"`
	Body       []byte        `json:"-"`
	Duration   time.Duration `json:"duration"`
	// Authorized is true when the final attempt carried a credential
	Authorized bool `json:"authorized"`
}
