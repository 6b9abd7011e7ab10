package domain

import (
	"fmt"
	"strings"
)

// Direction represents sort direction.
type Direction string

const (
	// Asc represents ascending order.
	Asc Direction = "asc"
	// Desc represents descending order.
	Desc Direction = "desc"
)

// SortFieldPrice is the only field the listing sorts locally.
const SortFieldPrice = "price"

// SortSpec selects a local sort override for the listing.
type SortSpec struct {
	Field     string
	Direction Direction
}

// Valid reports whether s names a field and a known direction.
func (s SortSpec) Valid() bool {
	return s.Field != "" && (s.Direction == Asc || s.Direction == Desc)
}

func (s SortSpec) String() string {
	return fmt.Sprintf("%s:%s", s.Field, s.Direction)
}

// ParseSortSpec parses "field:direction" (direction defaults to asc).
// An empty string yields nil.
func ParseSortSpec(raw string) (*SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	field, dir, found := strings.Cut(raw, ":")
	spec := &SortSpec{
		Field:     strings.ToLower(strings.TrimSpace(field)),
		Direction: Asc,
	}
	if found {
		spec.Direction = Direction(strings.ToLower(strings.TrimSpace(dir)))
	}

	if !spec.Valid() {
		return nil, fmt.Errorf("invalid sort spec %q: want field:asc or field:desc", raw)
	}
	return spec, nil
}
