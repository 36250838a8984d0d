// Package repository defines the profile store interface and errors.
package repository

import (
	"context"

	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/internal/domain/types"
)

// UpdateFunc computes the attribute updates to merge for one user. It
// receives a copy of the user's current attribute state and returns the
// touched attributes keyed by element id. Returning an error aborts the
// update with no state change.
type UpdateFunc = func(prior map[string]model.UserAttribute) (map[string]model.UserAttribute, error)

// Store provides read/write access to accumulated user attributes.
type Store interface {
	// Update runs fn against the user's current attributes and merges the
	// returned updates, all under a per-shard lock. This serializes
	// read-modify-write cycles for the same user, which the accumulation
	// contract requires (it is not commutative-safe under concurrent
	// writers to the same attribute).
	Update(ctx context.Context, userID string, fn UpdateFunc) error

	// Attributes returns a copy of the user's accumulated attributes.
	// Returns ErrNotFound if the user has no profile yet.
	Attributes(ctx context.Context, userID string) (map[string]model.UserAttribute, error)

	// Profile returns a read view of the user's attributes ordered by
	// element id. Returns ErrNotFound if the user has no profile yet.
	Profile(ctx context.Context, userID string) (types.Profile, error)

	// Users returns the number of user profiles tracked.
	Users(ctx context.Context) int

	// Count returns the total number of accumulated attributes across all
	// profiles.
	Count(ctx context.Context) int
}
