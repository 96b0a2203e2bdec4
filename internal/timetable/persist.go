package timetable

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads path, validates its contents and returns a ready
// TimeTable with path remembered for later Reload/Save calls.
// Grounded on the teacher's internal/store.Store.Load, generalized to
// surface the spec.md §4.1 InvalidSyntax/InvalidContent distinction.
func Load(path string) (*TimeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOError, err)
	}

	tt := New()
	if err := json.Unmarshal(data, tt); err != nil {
		if errors.Is(err, ErrInvalidSyntax) || errors.Is(err, ErrInvalidContent) {
			return nil, err // already wrapped by UnmarshalJSON
		}
		// encoding/json rejects malformed documents before UnmarshalJSON runs.
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}
	if err := tt.validateNow(); err != nil {
		return nil, err
	}
	tt.dirty = false
	tt.path = path
	return tt, nil
}

// Reload re-reads the backing file. On any failure the receiver keeps
// its prior state untouched and the error is returned, matching
// spec.md's "retain prior state and report the error".
func (tt *TimeTable) Reload() error {
	if tt.path == "" {
		return fmt.Errorf("%w: no backing file configured for reload", ErrIOError)
	}
	reloaded, err := Load(tt.path)
	if err != nil {
		return err
	}
	*tt = *reloaded
	return nil
}

// Save writes the current state atomically (write-to-temp + rename),
// matching the teacher's internal/store.Store.Save and spec.md §4.1's
// persistence contract. Validates first so an invalid in-memory state
// is never written to disk.
func (tt *TimeTable) Save() error {
	if err := tt.validateNow(); err != nil {
		return err
	}
	return tt.save()
}

// save writes without validating; used internally by Update once the
// merged clone has already been validated.
func (tt *TimeTable) save() error {
	if tt.path == "" {
		return fmt.Errorf("%w: no backing file configured for save", ErrIOError)
	}

	data, err := json.MarshalIndent(tt, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}

	dir := filepath.Dir(tt.path)
	tmp, err := os.CreateTemp(dir, ".timetable-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}

	if err := os.Rename(tmpPath, tt.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}
	return nil
}
