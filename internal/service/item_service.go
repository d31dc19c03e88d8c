package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stockroom/internal/cache"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/shape"
)

const itemCacheTTL = 5 * time.Minute

// ListOptions narrows and shapes an item listing.
type ListOptions struct {
	OwnerID   *uint
	DescLimit *int
}

// CreateItemInput carries the caller-supplied fields for a new item. The
// owner is never part of the input; it comes from the session.
type CreateItemInput struct {
	ItemName    string
	Description *string
	Quantity    interface{}
}

// UpdateItemInput carries a partial item update. Nil fields are left alone.
type UpdateItemInput struct {
	ItemName    *string
	Description *string
	Quantity    interface{}
}

// ItemService orchestrates validation, ownership checks, and shaping for
// inventory items.
type ItemService interface {
	List(ctx context.Context, opts ListOptions) ([]shape.ItemView, error)
	Get(ctx context.Context, id uint, descLimit *int) (*shape.ItemView, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Item, error)
	Create(ctx context.Context, ownerID uint, in CreateItemInput) (*shape.ItemView, error)
	Update(ctx context.Context, id, callerID uint, in UpdateItemInput) (*shape.ItemView, error)
	Delete(ctx context.Context, id, callerID uint) error
}

type itemService struct {
	items repository.ItemRepository
	users repository.UserRepository
	cache *cache.Client
}

// NewItemService builds an ItemService with repositories and cache.
func NewItemService(items repository.ItemRepository, users repository.UserRepository, cache *cache.Client) ItemService {
	return &itemService{items: items, users: users, cache: cache}
}

func (s *itemService) cacheKey(id uint) string {
	return fmt.Sprintf("item:%d", id)
}

// List returns shaped items, optionally restricted to one owner.
func (s *itemService) List(ctx context.Context, opts ListOptions) ([]shape.ItemView, error) {
	var (
		items []model.Item
		err   error
	)
	if opts.OwnerID != nil {
		items, err = s.items.ListByOwner(ctx, *opts.OwnerID)
	} else {
		items, err = s.items.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	owners, err := s.loadOwners(ctx, items)
	if err != nil {
		return nil, err
	}
	return shape.Items(items, owners, opts.DescLimit), nil
}

// Get returns a single shaped item.
func (s *itemService) Get(ctx context.Context, id uint, descLimit *int) (*shape.ItemView, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, item.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	return shape.Item(item, owner, descLimit), nil
}

// ListByOwner returns raw rows for the legacy by-user endpoint.
func (s *itemService) ListByOwner(ctx context.Context, ownerID uint) ([]model.Item, error) {
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create validates and stores a new item owned by the session user.
func (s *itemService) Create(ctx context.Context, ownerID uint, in CreateItemInput) (*shape.ItemView, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, apperrors.ErrMissingField
	}
	quantity, err := parseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	description := ""
	if in.Description != nil {
		description = *in.Description
	}

	item := &model.Item{
		ItemName:    name,
		Description: description,
		Quantity:    quantity,
		UserID:      ownerID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	return shape.Item(item, owner, nil), nil
}

// Update applies a partial update after verifying the caller owns the item.
func (s *itemService) Update(ctx context.Context, id, callerID uint, in UpdateItemInput) (*shape.ItemView, error) {
	if in.ItemName == nil && in.Description == nil && in.Quantity == nil {
		return nil, apperrors.ErrNoFields
	}

	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != callerID {
		return nil, apperrors.ErrNotOwner
	}

	if in.ItemName != nil {
		name := strings.TrimSpace(*in.ItemName)
		if name == "" {
			return nil, apperrors.ErrMissingField
		}
		item.ItemName = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		quantity, err := parseQuantity(in.Quantity)
		if err != nil {
			return nil, err
		}
		item.Quantity = quantity
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	owner, err := s.users.FindByID(ctx, item.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	return shape.Item(item, owner, nil), nil
}

// Delete removes an item permanently after the same ownership check as Update.
func (s *itemService) Delete(ctx context.Context, id, callerID uint) error {
	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != callerID {
		return apperrors.ErrNotOwner
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// find loads an item, serving repeat reads from cache.
func (s *itemService) find(ctx context.Context, id uint) (*model.Item, error) {
	var cached model.Item
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	s.cache.SetJSON(ctx, s.cacheKey(id), item, itemCacheTTL)
	return item, nil
}

// loadOwners batch-loads the distinct owners of a result set in one query.
// Owners deleted out-of-band are simply absent from the map.
func (s *itemService) loadOwners(ctx context.Context, items []model.Item) (map[uint]*model.User, error) {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if !seen[item.UserID] {
			seen[item.UserID] = true
			ids = append(ids, item.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load owners: %w", err)
	}
	owners := make(map[uint]*model.User, len(users))
	for i := range users {
		owners[users[i].ID] = &users[i]
	}
	return owners, nil
}
