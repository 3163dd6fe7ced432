// Package store persists variable sweeps of calculator expressions.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Store is the interface for sweep persistence.
type Store interface {
	// SaveRun records a run and all its rows and returns the run's ID. If
	// the run has no ID, a new one is assigned.
	SaveRun(ctx context.Context, run Run) (string, error)
	// Run retrieves a saved run with its rows in step order.
	Run(ctx context.Context, id string) (Run, error)
	// Results retrieves the rows of a saved run in step order.
	Results(ctx context.Context, id string) ([]Row, error)
	// Runs lists the IDs of saved runs in the order they were first saved.
	// Replacing a run does not move it.
	Runs(ctx context.Context) ([]string, error)
	// Close releases resources.
	Close() error
}

// Run is one sweep of an expression over its variables.
type Run struct {
	ID      string
	Expr    string
	Mode    string
	Created time.Time
	Rows    []Row
}

// Row is the result of one step of a sweep.
type Row struct {
	Step     int
	Value    float64
	Bindings []Binding
}

// Binding is the value of a variable at one step.
type Binding struct {
	Name  string
	Value float64
}
