package store

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/spendplan/csp-backend/internal/model"
)

// ErrNotFound is returned when a requested document does not exist. A missing
// settings document is NOT an error: GetSettings returns an empty document
// instead, per the settings-store contract.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations used by the CSP service: the
// per-user settings document and the named scenario collection.
type Store interface {
	// Settings operations. GetSettings returns an empty document when the
	// user has never written one; SaveSettings replaces the whole document.
	GetSettings(ctx context.Context, userID string) (*model.Settings, error)
	SaveSettings(ctx context.Context, userID string, settings *model.Settings) error

	// Scenario operations.
	CreateScenario(ctx context.Context, scenario *model.Scenario) error
	GetScenario(ctx context.Context, scenarioID string) (*model.Scenario, error)
	ListScenarios(ctx context.Context, userID string, pageSize int32, pageToken string) ([]*model.Scenario, string, error)
	DeleteScenario(ctx context.Context, scenarioID string) error
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
