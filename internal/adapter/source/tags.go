package source

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// taggedExtensions are the containers dhowden/tag can read.
var taggedExtensions = []string{".mp3", ".m4a", ".m4b", ".mp4", ".flac", ".ogg", ".dsf"}

// Tags builds carousel items from tagged audio files: one page per file, with
// the title, artist/album caption and embedded cover art.
type Tags struct {
	logger *slog.Logger
	root   string
	limit  int
}

// NewTags creates a source scanning root recursively.
// limit caps the number of items; zero means no cap.
func NewTags(logger *slog.Logger, root string, limit int) *Tags {
	return &Tags{logger: logger, root: root, limit: limit}
}

// IsSupported reports whether path has a tag-readable extension.
func IsSupported(path string) bool {
	return slices.Contains(taggedExtensions, strings.ToLower(filepath.Ext(path)))
}

// Items scans the root directory and reads every supported file's tags.
// Files without readable tags still produce an item titled by file name.
func (s *Tags) Items(ctx context.Context) ([]domain.CarouselItem, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, domain.NewSourceError("scan", s.root, "cannot stat root", err)
	}
	if !info.IsDir() {
		return nil, domain.NewSourceError("scan", s.root, "not a directory", nil)
	}

	files, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewSourceError("scan", s.root, "no tagged audio files", domain.ErrEmptySource)
	}

	items := make([]domain.CarouselItem, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		items = append(items, s.read(path))
	}

	s.logger.Debug("audio items loaded", slog.String("root", s.root), slog.Int("items", len(items)))
	return items, nil
}

// collect returns supported files under root in lexical order.
func (s *Tags) collect(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Skip entries we can't access
			return nil
		}
		if d.IsDir() || !IsSupported(path) {
			return nil
		}

		files = append(files, path)
		if s.limit > 0 && len(files) >= s.limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, domain.NewSourceError("scan", s.root, "walk failed", err)
	}

	return files, nil
}

// read extracts one item; unreadable tags fall back to the file name.
func (s *Tags) read(path string) domain.CarouselItem {
	item := domain.CarouselItem{
		ID:    path,
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	file, err := os.Open(path)
	if err != nil {
		s.logger.Warn("cannot open audio file", slog.String("path", path), slog.Any("error", err))
		return item
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		s.logger.Debug("no readable tags", slog.String("path", path), slog.Any("error", err))
		return item
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		item.Title = title
	}

	var parts []string
	for _, p := range []string{metadata.Artist(), metadata.Album()} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	item.Subtitle = strings.Join(parts, " - ")

	if picture := metadata.Picture(); picture != nil {
		item.Artwork = picture.Data
		item.ArtworkMIME = picture.MIMEType
	}

	return item
}

var _ ports.ItemSource = (*Tags)(nil)
