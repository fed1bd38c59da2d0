package store

import (
	"context"
	"sort"
	"sync"

	"github.com/spendplan/csp-backend/internal/model"
)

// MemoryStore implements Store with in-memory storage for local development
// and tests.
type MemoryStore struct {
	mu sync.RWMutex

	settings  map[string]*model.Settings
	scenarios map[string]*model.Scenario
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		settings:  make(map[string]*model.Settings),
		scenarios: make(map[string]*model.Scenario),
	}
}

// paginateIDs applies cursor-based pagination to a slice of IDs.
// Returns the paginated IDs and the next page token (empty if no more pages).
func paginateIDs(ids []string, pageSize int32, pageToken string) ([]string, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	sort.Strings(ids)

	startIdx := 0
	if pageToken != "" {
		cursor, err := DecodePageToken(pageToken)
		if err != nil {
			return nil, "", err
		}
		for i, id := range ids {
			if id > cursor {
				startIdx = i
				break
			}
			startIdx = len(ids)
		}
	}

	ids = ids[startIdx:]
	if len(ids) <= int(pageSize) {
		return ids, "", nil
	}
	page := ids[:pageSize]
	return page, EncodePageToken(page[len(page)-1]), nil
}

// GetSettings returns a copy of the user's settings, or an empty document
// when none has been written.
func (m *MemoryStore) GetSettings(ctx context.Context, userID string) (*model.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.settings[userID]
	if !ok {
		return &model.Settings{}, nil
	}
	return copySettings(s), nil
}

// SaveSettings replaces the user's settings document.
func (m *MemoryStore) SaveSettings(ctx context.Context, userID string, settings *model.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[userID] = copySettings(settings)
	return nil
}

// CreateScenario stores a scenario keyed by its id.
func (m *MemoryStore) CreateScenario(ctx context.Context, scenario *model.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *scenario
	m.scenarios[scenario.Id] = &copied
	return nil
}

// GetScenario retrieves a scenario by id.
func (m *MemoryStore) GetScenario(ctx context.Context, scenarioID string) (*model.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.scenarios[scenarioID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

// ListScenarios lists a user's scenarios with cursor pagination.
func (m *MemoryStore) ListScenarios(ctx context.Context, userID string, pageSize int32, pageToken string) ([]*model.Scenario, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, s := range m.scenarios {
		if s.UserId == userID {
			ids = append(ids, id)
		}
	}

	page, nextToken, err := paginateIDs(ids, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	scenarios := make([]*model.Scenario, 0, len(page))
	for _, id := range page {
		copied := *m.scenarios[id]
		scenarios = append(scenarios, &copied)
	}
	return scenarios, nextToken, nil
}

// DeleteScenario removes a scenario.
func (m *MemoryStore) DeleteScenario(ctx context.Context, scenarioID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.scenarios, scenarioID)
	return nil
}

func copySettings(s *model.Settings) *model.Settings {
	copied := &model.Settings{
		ExcludedPayees:            append([]string(nil), s.ExcludedPayees...),
		ExcludedIncomeCategories:  append([]string(nil), s.ExcludedIncomeCategories...),
		ExcludedExpenseCategories: append([]string(nil), s.ExcludedExpenseCategories...),
	}
	if s.CategoryMappings != nil {
		copied.CategoryMappings = make(map[string]string, len(s.CategoryMappings))
		for k, v := range s.CategoryMappings {
			copied.CategoryMappings[k] = v
		}
	}
	return copied
}
