// Package export reads and writes session export files: a single JSON
// document bundling the session metadata with its full transcript. Files
// written here can be rendered later without any network access.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"remotelog/internal/api"
	"remotelog/internal/event"
)

// ErrNotExportFile is returned when a file parses as JSON but lacks the
// export document shape.
var ErrNotExportFile = errors.New("not a session export file")

// Document is the on-disk export shape. Events are carried decoded, so a
// written file re-read through ReadFile reproduces them exactly.
type Document struct {
	Session     api.Session          `json:"session"`
	Events      []event.SessionEvent `json:"events"`
	ExportedAt  string               `json:"exported_at"`
	TotalEvents int                  `json:"total_events"`
}

// New assembles an export document stamped with the current time.
func New(session api.Session, events []event.SessionEvent) Document {
	return Document{
		Session:     session,
		Events:      events,
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		TotalEvents: len(events),
	}
}

// WriteFile writes the document as indented JSON to path.
func WriteFile(path string, doc Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		file.Close() //nolint:errcheck
		return fmt.Errorf("write export file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ReadFile loads an export document from path. The session id must be
// present; a JSON file of some other shape is rejected.
func ReadFile(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("open export file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse export file %s: %w", path, err)
	}
	if doc.Session.ID == "" {
		return Document{}, fmt.Errorf("%w: %s has no session id", ErrNotExportFile, path)
	}
	return doc, nil
}
