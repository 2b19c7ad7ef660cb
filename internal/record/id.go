// internal/record/id.go
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the numeric identifier of an entity record.
type ID int

// Root is the synthetic root node of the reference graph. Real STEP ids are
// strictly positive, so zero never collides with a record.
const Root ID = 0

// String returns the canonical `#<n>` form of the identifier.
func (id ID) String() string {
	return "#" + strconv.Itoa(int(id))
}

// IsRoot reports whether id is the synthetic root.
func (id ID) IsRoot() bool {
	return id == Root
}

// ParseID parses the `#<digits>` form into an ID.
func ParseID(raw string) (ID, error) {
	if !strings.HasPrefix(raw, "#") {
		return 0, fmt.Errorf("invalid record id %q: missing '#' prefix", raw)
	}
	digits := raw[1:]
	if digits == "" {
		return 0, fmt.Errorf("invalid record id %q: no digits", raw)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid record id %q: non-digit %q", raw, r)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q: %w", raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid record id %q: must be positive", raw)
	}
	return ID(n), nil
}
