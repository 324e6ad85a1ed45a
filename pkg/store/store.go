// Package store provides in-memory storage for saved expressions and
// evaluation history.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EvaluationState represents the outcome of a recorded evaluation.
type EvaluationState string

const (
	EvaluationSucceeded EvaluationState = "SUCCEEDED"
	EvaluationFailed    EvaluationState = "FAILED"
)

// Expression represents a saved, named expression.
type Expression struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
}

// Evaluation represents one recorded evaluation, successful or failed.
type Evaluation struct {
	Name       string          `json:"name"`
	Source     string          `json:"source"`
	State      EvaluationState `json:"state"`
	Value      int64           `json:"value,omitempty"`
	Repr       string          `json:"repr,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreateTime time.Time       `json:"createTime"`
}

// Store is a thread-safe in-memory storage for expressions and evaluations.
type Store struct {
	mu          sync.RWMutex
	expressions map[string]*Expression
	evaluations map[string]*Evaluation
}

// New creates a new empty store.
func New() *Store {
	return &Store{
		expressions: make(map[string]*Expression),
		evaluations: make(map[string]*Evaluation),
	}
}

// CreateExpression saves a new named expression. It fails if the ID is
// already taken.
func (s *Store) CreateExpression(id, source, description string) (*Expression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expressions[id]; exists {
		return nil, fmt.Errorf("expression %q already exists", id)
	}

	now := time.Now()
	e := &Expression{
		ID:          id,
		Source:      source,
		Description: description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	s.expressions[id] = e
	return e, nil
}

// GetExpression returns a saved expression by ID.
func (s *Store) GetExpression(id string) (*Expression, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expressions[id]
	if !ok {
		return nil, fmt.Errorf("expression %q not found", id)
	}
	return e, nil
}

// UpdateExpression replaces the source and description of a saved expression.
func (s *Store) UpdateExpression(id, source, description string) (*Expression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expressions[id]
	if !ok {
		return nil, fmt.Errorf("expression %q not found", id)
	}
	e.Source = source
	e.Description = description
	e.UpdateTime = time.Now()
	return e, nil
}

// DeleteExpression removes a saved expression.
func (s *Store) DeleteExpression(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expressions[id]; !ok {
		return fmt.Errorf("expression %q not found", id)
	}
	delete(s.expressions, id)
	return nil
}

// ListExpressions returns all saved expressions, ordered by ID.
func (s *Store) ListExpressions() []*Expression {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Expression, 0, len(s.expressions))
	for _, e := range s.expressions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RecordEvaluation stores one evaluation outcome. evalErr nil records a
// SUCCEEDED evaluation with value and repr; non-nil records a FAILED one with
// the error message.
func (s *Store) RecordEvaluation(source string, value int64, repr string, evalErr error) *Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Evaluation{
		Name:       uuid.New().String(),
		Source:     source,
		CreateTime: time.Now(),
	}
	if evalErr != nil {
		e.State = EvaluationFailed
		e.Error = evalErr.Error()
	} else {
		e.State = EvaluationSucceeded
		e.Value = value
		e.Repr = repr
	}
	s.evaluations[e.Name] = e
	return e
}

// GetEvaluation returns a recorded evaluation by name.
func (s *Store) GetEvaluation(name string) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.evaluations[name]
	if !ok {
		return nil, fmt.Errorf("evaluation %q not found", name)
	}
	return e, nil
}

// ListEvaluations returns recorded evaluations, newest first. A limit of 0
// returns all of them.
func (s *Store) ListEvaluations(limit int) []*Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Evaluation, 0, len(s.evaluations))
	for _, e := range s.evaluations {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateTime.After(out[j].CreateTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
