package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a piece of ingested text came from.
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
	Platform  string `json:"platform,omitempty"`
	Rendered  bool   `json:"rendered,omitempty"`
}

// NewMetadata stamps content with the current UTC time and its SHA-256 hash.
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(content),
	}
}

// ContentHash returns the hex SHA-256 digest of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
