// Package persist holds the namespaces the application stores and the
// best-effort policy used to read and write them.
package persist

import (
	"encoding/json"
	"log/slog"
)

// Namespaces.
const (
	Library = "library"
	Ranges  = "ranges"
	SRS     = "srs"
)

// Store is an opaque key-value persistence capability. Read returns nil
// data when nothing has been written under the namespace.
type Store interface {
	Read(namespace string) ([]byte, error)
	Write(namespace string, data []byte) error
}

// Load decodes the namespace into v. Missing, unreadable or corrupt data
// leaves v untouched and reports false; it is never fatal.
func Load(s Store, namespace string, v any) bool {
	if s == nil {
		return false
	}
	data, err := s.Read(namespace)
	if err != nil {
		slog.Warn("Failed to read namespace, starting empty", "namespace", namespace, "error", err)
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("Corrupt namespace, starting empty", "namespace", namespace, "error", err)
		return false
	}
	return true
}

// Save encodes v and rewrites the whole namespace. Failures are logged and
// swallowed; the in-memory state stays authoritative.
func Save(s Store, namespace string, v any) {
	if s == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode namespace", "namespace", namespace, "error", err)
		return
	}
	if err := s.Write(namespace, data); err != nil {
		slog.Error("Failed to persist namespace", "namespace", namespace, "error", err)
	}
}
