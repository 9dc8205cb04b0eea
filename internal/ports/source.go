package ports

import (
	"context"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
)

// ItemSource produces the items a carousel pages through.
type ItemSource interface {
	// Items returns the items in display order.
	// Returns domain.ErrEmptySource (possibly wrapped) when nothing usable was found.
	Items(ctx context.Context) ([]domain.CarouselItem, error)
}
