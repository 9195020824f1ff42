package sampler

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrMissingSample is returned when a set has no sample for the exact
	// requested frequency.
	ErrMissingSample = errors.New("no instrument sample for frequency")
	// ErrMalformed marks a sample file that decodes but is not mono 16-bit
	// PCM with at least one frame.
	ErrMalformed = errors.New("malformed sample file")
)

// LoadError reports the file that stopped an instrument directory from
// loading. Loads are all-or-nothing, so a LoadError always comes with a nil
// Set.
type LoadError struct {
	Dir  string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load instrument %s: %s: %v", e.Dir, filepath.Base(e.Path), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
