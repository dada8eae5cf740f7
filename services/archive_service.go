package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/storage"
)

// CategoryArchive is the results document stored for a completed category.
type CategoryArchive struct {
	Category   *models.Category    `json:"category"`
	Groups     []models.GroupTable `json:"groups"`
	Knockout   []*models.Match     `json:"knockout"`
	ArchivedAt time.Time           `json:"archived_at"`
}

type ArchiveService interface {
	// ArchiveCategory uploads the category results and returns their public location.
	ArchiveCategory(ctx context.Context, categoryID int) (string, error)
}

type archiveService struct {
	categories CategoryService
	store      storage.ObjectStore
	logger     *slog.Logger
	now        func() time.Time
}

func NewArchiveService(categories CategoryService, store storage.ObjectStore, logger *slog.Logger) ArchiveService {
	return &archiveService{
		categories: categories,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

func archiveKey(categoryID int) string {
	return fmt.Sprintf("categories/%d/results.json", categoryID)
}

func (s *archiveService) ArchiveCategory(ctx context.Context, categoryID int) (string, error) {
	view, err := s.categories.GetBracket(ctx, categoryID)
	if err != nil {
		return "", err
	}
	if view.Category.Status != models.StatusCompleted {
		return "", fmt.Errorf("%w: only completed categories are archived", ErrInvalidState)
	}

	doc := CategoryArchive{
		Category:   view.Category,
		Groups:     make([]models.GroupTable, 0, len(view.Groups)),
		Knockout:   view.Knockout,
		ArchivedAt: s.now().UTC(),
	}
	for _, g := range view.Groups {
		doc.Groups = append(doc.Groups, models.GroupTable{Group: g, Standings: ComputeStandings(g, g.Matches)})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode archive of category %d: %w", categoryID, err)
	}

	res, err := s.store.Put(ctx, archiveKey(categoryID), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	s.logger.DebugContext(ctx, "archive uploaded", slog.String("key", res.Key), slog.String("etag", res.ETag))
	return res.Location, nil
}
