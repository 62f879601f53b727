// Package pagination provides cursor-based pagination utilities.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor represents a position in a paginated result set.
type Cursor struct {
	Timestamp time.Time
	ID        string
}

// Encode returns an opaque cursor string from a timestamp and ID.
func Encode(ts time.Time, id string) string {
	raw := fmt.Sprintf("%d|%s", ts.UnixNano(), id)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// Decode parses an opaque cursor string. Returns nil for empty input.
func Decode(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor")
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor")
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor")
	}
	return &Cursor{
		Timestamp: time.Unix(0, nanos).UTC(),
		ID:        parts[1],
	}, nil
}

// After returns the portion of a newest-first slice strictly after the
// cursor position. A nil cursor returns the slice unchanged; a cursor that
// matches nothing (the record was evicted) returns the full slice so
// clients never silently lose pages.
func After[T any](items []T, c *Cursor, extractKey func(T) (time.Time, string)) []T {
	if c == nil {
		return items
	}
	for i, item := range items {
		ts, id := extractKey(item)
		if id == c.ID && ts.Equal(c.Timestamp) {
			return items[i+1:]
		}
	}
	return items
}

// Page trims items to limit and returns the trimmed slice, the opaque
// cursor for the next page, and a has-more flag.
func Page[T any](items []T, limit int, extractKey func(T) (time.Time, string)) ([]T, string, bool) {
	if limit <= 0 || len(items) <= limit {
		return items, "", false
	}
	items = items[:limit]
	last := items[len(items)-1]
	ts, id := extractKey(last)
	return items, Encode(ts, id), true
}
