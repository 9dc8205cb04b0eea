// Package source provides ports.ItemSource implementations: a fixed list of
// captions and a directory of tagged audio files.
package source

import (
	"context"
	"strconv"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// Static yields one text item per caption.
type Static struct {
	captions []string
}

// NewStatic creates a source over captions. The slice is copied.
func NewStatic(captions ...string) *Static {
	c := make([]string, len(captions))
	copy(c, captions)
	return &Static{captions: c}
}

// Items returns the captions as carousel items.
func (s *Static) Items(ctx context.Context) ([]domain.CarouselItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.captions) == 0 {
		return nil, domain.ErrEmptySource
	}

	items := make([]domain.CarouselItem, len(s.captions))
	for i, c := range s.captions {
		items[i] = domain.CarouselItem{ID: strconv.Itoa(i), Title: c}
	}
	return items, nil
}

var _ ports.ItemSource = (*Static)(nil)
