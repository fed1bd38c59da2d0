package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/spendplan/csp-backend/internal/model"
)

const (
	settingsCollection  = "cspSettings"
	scenariosCollection = "cspScenarios"
)

// FirestoreStore implements the Store interface using Firestore. Settings
// live in cspSettings keyed by user id; scenarios in cspScenarios keyed by
// scenario id with a UserId field.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// GetSettings retrieves the user's settings document. A missing document
// reads as an empty one.
func (s *FirestoreStore) GetSettings(ctx context.Context, userID string) (*model.Settings, error) {
	doc, err := s.client.Collection(settingsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &model.Settings{}, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings model.Settings
	if err := doc.DataTo(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings replaces the user's settings document. Field-level
// last-writer-wins across concurrent sessions falls out of whole-document
// Set on the per-user document.
func (s *FirestoreStore) SaveSettings(ctx context.Context, userID string, settings *model.Settings) error {
	_, err := s.client.Collection(settingsCollection).Doc(userID).Set(ctx, settings)
	return err
}

// CreateScenario stores a scenario document keyed by its id.
func (s *FirestoreStore) CreateScenario(ctx context.Context, scenario *model.Scenario) error {
	_, err := s.client.Collection(scenariosCollection).Doc(scenario.Id).Set(ctx, scenario)
	return err
}

// GetScenario retrieves a scenario by id.
func (s *FirestoreStore) GetScenario(ctx context.Context, scenarioID string) (*model.Scenario, error) {
	doc, err := s.client.Collection(scenariosCollection).Doc(scenarioID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	var scenario model.Scenario
	if err := doc.DataTo(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &scenario, nil
}

// ListScenarios lists a user's scenarios with cursor pagination.
// NOTE: Field names must match Go struct field names (PascalCase) as that's
// how Firestore serializes the documents.
func (s *FirestoreStore) ListScenarios(ctx context.Context, userID string, pageSize int32, pageToken string) ([]*model.Scenario, string, error) {
	query := s.client.Collection(scenariosCollection).
		Where("UserId", "==", userID).
		OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		query = query.StartAfter(docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(int(pageSize) + 1) // +1 to detect next page

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list scenarios: %w", err)
	}

	var nextPageToken string
	if len(docs) > int(pageSize) {
		docs = docs[:pageSize]
		nextPageToken = EncodePageToken(docs[pageSize-1].Ref.ID)
	}

	scenarios := make([]*model.Scenario, 0, len(docs))
	for _, doc := range docs {
		var scenario model.Scenario
		if err := doc.DataTo(&scenario); err != nil {
			return nil, "", fmt.Errorf("failed to parse scenario: %w", err)
		}
		scenarios = append(scenarios, &scenario)
	}
	return scenarios, nextPageToken, nil
}

// DeleteScenario removes a scenario document.
func (s *FirestoreStore) DeleteScenario(ctx context.Context, scenarioID string) error {
	_, err := s.client.Collection(scenariosCollection).Doc(scenarioID).Delete(ctx)
	return err
}
