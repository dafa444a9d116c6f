package storage

import (
	"context"
	"time"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// PaymentLinkStore defines the interface for managing merchant payment links.
type PaymentLinkStore interface {
	// CreatePaymentLink creates a new active link for a merchant.
	CreatePaymentLink(ctx context.Context, link *models.PaymentLink) (*models.PaymentLink, error)

	// GetPaymentLinkByLinkId retrieves a link by its public slug. A link
	// whose expiry has passed is flipped to expired on read and returned
	// with ErrLinkExpired.
	GetPaymentLinkByLinkId(ctx context.Context, linkID string) (*models.PaymentLink, error)

	// ListOverdueActiveLinks retrieves active links whose expiry is before
	// the cutoff, for the scheduled expiry sweep.
	ListOverdueActiveLinks(ctx context.Context, cutoff time.Time) ([]models.PaymentLink, error)

	// ExpirePaymentLink flips an active link to expired. A link that is no
	// longer active is left untouched.
	ExpirePaymentLink(ctx context.Context, id string) error
}
