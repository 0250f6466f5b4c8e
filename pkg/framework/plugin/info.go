package plugin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInfo is returned by Validate for incomplete metadata
var ErrInvalidInfo = errors.New("invalid processor info")

// Info contains processor metadata
type Info struct {
	ID       string // Reverse-domain identifier (e.g., "com.example.drone")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string
	Category string // e.g. "Instrument|Synth"
}

// String renders "Name Version (Vendor)"
func (i Info) String() string {
	s := i.Name
	if i.Version != "" {
		s += " " + i.Version
	}
	if i.Vendor != "" {
		s += " (" + i.Vendor + ")"
	}
	return s
}

// Validate checks that the identifying fields are set
func (i Info) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: empty ID", ErrInvalidInfo)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: empty name for %s", ErrInvalidInfo, i.ID)
	}
	return nil
}
