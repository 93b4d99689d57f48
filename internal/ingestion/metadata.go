package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes how a document file was turned into pages
type Metadata struct {
	Path         string `json:"path"`
	Format       string `json:"format"`
	Timestamp    string `json:"timestamp"` // RFC3339 format
	Hash         string `json:"hash"`      // SHA256 hex digest of the raw file
	RawPages     int    `json:"raw_pages"`
	KeptPages    int    `json:"kept_pages"`
	DroppedPages int    `json:"dropped_pages"`
	Truncated    bool   `json:"truncated,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(path, format string, raw []byte) *Metadata {
	return &Metadata{
		Path:      path,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
