// Package shape holds the read-side shaping pipeline: password redaction,
// description truncation, and owner enrichment. Everything here is a pure
// function over snapshots; inputs are never mutated and no I/O happens.
package shape

import (
	"time"

	"stockroom/internal/model"
)

// ellipsis marks a truncated description.
const ellipsis = "..."

// UserProfile is the public projection of a user. There is no field for the
// password hash, so it cannot leak through serialization.
type UserProfile struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemView is an item as it leaves the service boundary, optionally carrying
// the redacted profile of its owner.
type ItemView struct {
	ID          uint         `json:"id"`
	ItemName    string       `json:"item_name"`
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UserID      uint         `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	User        *UserProfile `json:"user,omitempty"`
}

// Profile redacts a user down to its public attributes.
func Profile(u *model.User) *UserProfile {
	if u == nil {
		return nil
	}
	return &UserProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// Truncate returns the first limit characters of s followed by "..." when s is
// longer than limit, and s unchanged otherwise. Cuts on rune boundaries.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

// Item shapes a single item. A nil owner leaves the user field unset; an item
// whose owner row vanished out-of-band still serializes cleanly.
func Item(item *model.Item, owner *model.User, descLimit *int) *ItemView {
	if item == nil {
		return nil
	}
	view := &ItemView{
		ID:          item.ID,
		ItemName:    item.ItemName,
		Description: item.Description,
		Quantity:    item.Quantity,
		UserID:      item.UserID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		User:        Profile(owner),
	}
	if descLimit != nil {
		view.Description = Truncate(view.Description, *descLimit)
	}
	return view
}

// Items shapes a batch, joining each item with its owner from the supplied
// snapshot. The result is a fresh slice; the inputs stay untouched.
func Items(items []model.Item, owners map[uint]*model.User, descLimit *int) []ItemView {
	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, *Item(&items[i], owners[items[i].UserID], descLimit))
	}
	return views
}
