package storage

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// ProfileStore defines the interface for actor profiles.
type ProfileStore interface {
	// GetProfile retrieves a profile by its id.
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)

	// CreateProfile creates the profile and its wallet in one atomic write,
	// so every actor has a wallet from signup onward.
	CreateProfile(ctx context.Context, profile *models.Profile, wallet *models.Wallet) (*models.Profile, error)

	// SetPin stores a new bcrypt PIN hash on the profile.
	SetPin(ctx context.Context, profileID, pinHash string) error
}
