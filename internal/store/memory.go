package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by tests and by demo mode when
// no database is configured. Documents are held as decoded JSON maps so
// predicate and ordering behavior matches the JSONB-backed store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]interface{})}
}

func (s *MemoryStore) Create(ctx context.Context, collection, companyID string, v interface{}) (string, error) {
	doc, err := toDocument(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	doc["id"] = id
	if companyID != "" {
		doc["companyId"] = companyID
	}
	doc["createdAt"] = now
	doc["updatedAt"] = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = doc
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, companyID, id string, dest interface{}) error {
	s.mu.RLock()
	doc, ok := s.collections[collection][id]
	s.mu.RUnlock()
	if !ok || !ownedBy(doc, companyID) {
		return ErrNotFound
	}
	return decodeInto(doc, dest)
}

func (s *MemoryStore) Query(ctx context.Context, collection, companyID string, q Query, dest interface{}) error {
	s.mu.RLock()
	matched := make([]map[string]interface{}, 0)
	for _, doc := range s.collections[collection] {
		if companyID != "" && fmt.Sprint(doc["companyId"]) != companyID {
			continue
		}
		if matchesFilters(doc, q.Filters) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			less := compareValues(matched[i][q.OrderBy], matched[j][q.OrderBy]) < 0
			if q.Desc {
				return !less
			}
			return less
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return decodeInto(matched, dest)
}

func (s *MemoryStore) Update(ctx context.Context, collection, companyID, id string, patch map[string]interface{}) error {
	normalized, err := toDocument(patch)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok || !ownedBy(doc, companyID) {
		return ErrNotFound
	}
	for k, v := range normalized {
		doc[k] = v
	}
	doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, companyID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.collections[collection][id]; !ok || !ownedBy(doc, companyID) {
		return nil
	}
	delete(s.collections[collection], id)
	return nil
}

// ownedBy reports whether the document belongs to the company. An empty
// companyID skips the check, matching Query's unscoped mode.
func ownedBy(doc map[string]interface{}, companyID string) bool {
	if companyID == "" {
		return true
	}
	return fmt.Sprint(doc["companyId"]) == companyID
}

func matchesFilters(doc map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if !matchesFilter(doc, f) {
			return false
		}
	}
	return true
}

func matchesFilter(doc map[string]interface{}, f Filter) bool {
	got, ok := doc[f.Field]
	if !ok {
		return false
	}

	if f.Op == OpContains {
		arr, ok := got.([]interface{})
		if !ok {
			return false
		}
		want := fmt.Sprint(f.Value)
		for _, item := range arr {
			if fmt.Sprint(item) == want {
				return true
			}
		}
		return false
	}

	cmp := compareValues(got, f.Value)
	switch f.Op {
	case OpEq:
		return cmp == 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	}
	return false
}

// compareValues orders two document values. Timestamps compare as time,
// numbers as floats, everything else as strings.
func compareValues(a, b interface{}) int {
	at, aok := asTime(a)
	bt, bok := asTime(b)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}

	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func decodeInto(src, dest interface{}) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
