package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory store.
type Memory struct {
	mu    sync.RWMutex
	runs  map[string]Run
	order []string
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{runs: make(map[string]Run)}
}

// SaveRun records a run.
func (m *Memory) SaveRun(ctx context.Context, run Run) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}
	run.Rows = cloneRows(run.Rows)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[run.ID]; !ok {
		m.order = append(m.order, run.ID)
	}
	m.runs[run.ID] = run
	return run.ID, nil
}

// Run retrieves a run.
func (m *Memory) Run(ctx context.Context, id string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	run.Rows = cloneRows(run.Rows)
	return run, nil
}

// Results retrieves the rows of a run.
func (m *Memory) Results(ctx context.Context, id string) ([]Row, error) {
	run, err := m.Run(ctx, id)
	if err != nil {
		return nil, err
	}
	return run.Rows, nil
}

// Runs lists run IDs in the order they were first saved.
func (m *Memory) Runs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order), nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	r := make([]Row, len(rows))
	for i, row := range rows {
		row.Bindings = slices.Clone(row.Bindings)
		r[i] = row
	}
	return r
}
