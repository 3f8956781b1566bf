// Package testing provides test utilities and on-disk fixtures for the pipeline packages
package testing

import (
	"fmt"
	"os"
)

// TestWorkspace is a throwaway directory holding input fixtures and export output
type TestWorkspace struct {
	Dir string
}

// SetupTestWorkspace creates a new workspace under the system temp directory
func SetupTestWorkspace() (*TestWorkspace, error) {
	dir, err := os.MkdirTemp("", "product_dashboard_test_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create test workspace: %w", err)
	}
	return &TestWorkspace{Dir: dir}, nil
}

// Cleanup removes the workspace and everything in it
func (w *TestWorkspace) Cleanup() error {
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("failed to remove test workspace %s: %w", w.Dir, err)
	}
	return nil
}

// TestWithWorkspace runs fn against a fresh workspace and removes it afterwards
func TestWithWorkspace(fn func(ws *TestWorkspace) error) error {
	ws, err := SetupTestWorkspace()
	if err != nil {
		return err
	}
	defer ws.Cleanup()

	return fn(ws)
}
