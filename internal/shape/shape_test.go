package shape

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/model"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "longer than limit gets ellipsis",
			input:    "A very long description",
			limit:    5,
			expected: "A ver...",
		},
		{
			name:     "shorter than limit unchanged",
			input:    "short",
			limit:    100,
			expected: "short",
		},
		{
			name:     "exactly at limit unchanged",
			input:    "12345",
			limit:    5,
			expected: "12345",
		},
		{
			name:     "empty string",
			input:    "",
			limit:    10,
			expected: "",
		},
		{
			name:     "zero limit",
			input:    "abc",
			limit:    0,
			expected: "...",
		},
		{
			name:     "multibyte runes cut on boundaries",
			input:    "héllo wörld",
			limit:    6,
			expected: "héllo ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.limit)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len([]rune(got)), tt.limit+3)
		})
	}
}

func TestTruncateIdempotentOnShortStrings(t *testing.T) {
	s := Truncate("abcdef", 100)
	assert.Equal(t, s, Truncate(s, 100))
}

func TestProfileOmitsPassword(t *testing.T) {
	user := &model.User{
		ID:           7,
		FirstName:    "Ann",
		LastName:     "Lee",
		Username:     "ann",
		PasswordHash: "$2a$10$secret",
	}

	payload, err := json.Marshal(Profile(user))
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "secret")
	assert.Contains(t, string(payload), `"username":"ann"`)
}

func TestItemsEnrichment(t *testing.T) {
	items := []model.Item{
		{ID: 1, ItemName: "Widget", Description: strings.Repeat("x", 10), UserID: 1},
		{ID: 2, ItemName: "Gadget", UserID: 2},
	}
	owners := map[uint]*model.User{
		1: {ID: 1, Username: "ann"},
		// owner 2 was deleted out-of-band
	}
	limit := 4

	views := Items(items, owners, &limit)
	require.Len(t, views, 2)

	assert.Equal(t, "xxxx...", views[0].Description)
	require.NotNil(t, views[0].User)
	assert.Equal(t, "ann", views[0].User.Username)

	// missing owner is omitted, not a crash
	assert.Nil(t, views[1].User)
	payload, err := json.Marshal(views[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"user":`)

	// inputs are snapshots, never mutated
	assert.Equal(t, strings.Repeat("x", 10), items[0].Description)
}

func TestItemNilOwnerAndNoLimit(t *testing.T) {
	item := &model.Item{ID: 3, ItemName: "Thing", Description: strings.Repeat("y", 500)}
	view := Item(item, nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.User)
	assert.Len(t, view.Description, 500)
}
