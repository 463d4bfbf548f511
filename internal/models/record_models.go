package models

import "time"

// Record is a single text entry from the sample dataset or an upload.
// CreatedAt and Source are passthrough metadata and never affect analysis.
type Record struct {
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Source    string     `json:"source,omitempty"`
}
