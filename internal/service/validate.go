package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "stockroom/internal/errors"
)

// parseQuantity coerces a decoded JSON value into a non-negative integer
// quantity. Absent values default to 0. Numeric strings are accepted because
// browser form clients submit numbers as strings.
func parseQuantity(v interface{}) (int, error) {
	switch q := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if q != math.Trunc(q) || q < 0 {
			return 0, apperrors.ErrInvalidQuantity
		}
		return int(q), nil
	case json.Number:
		n, err := strconv.Atoi(q.String())
		if err != nil || n < 0 {
			return 0, apperrors.ErrInvalidQuantity
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil || n < 0 {
			return 0, apperrors.ErrInvalidQuantity
		}
		return n, nil
	case int:
		if q < 0 {
			return 0, apperrors.ErrInvalidQuantity
		}
		return q, nil
	default:
		return 0, apperrors.ErrInvalidQuantity
	}
}

// allPresent reports whether every field is non-empty after trimming.
func allPresent(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
