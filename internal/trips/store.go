package trips

import (
	"context"

	"github.com/andesviajes/storefront/internal/domain"
)

// Store persists per-product trip customizations for a user. The whole
// map for a user is read, modified and written back as one value, so
// concurrent writers follow last-write-wins, the same contract the
// browser's local storage gave the original screens.
type Store interface {
	Save(ctx context.Context, userID string, productID int64, tc domain.TripCustomization) error
	Get(ctx context.Context, userID string, productID int64) (domain.TripCustomization, bool, error)
	All(ctx context.Context, userID string) (map[int64]domain.TripCustomization, error)
	Delete(ctx context.Context, userID string, productID int64) error
}
