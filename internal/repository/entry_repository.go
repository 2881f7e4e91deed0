package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"timetracker/internal/models"
)

// EntryRepository provides methods to interact with the Entry model in the database.
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) CreateEntry(ctx context.Context, entry *models.Entry) error {
	return r.db.WithContext(ctx).Omit("Project", "Author").Create(entry).Error
}

// ListEntriesByAuthor retrieves the Entries authored by the given user, with their projects.
func (r *EntryRepository) ListEntriesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Entry, error) {
	var entries []models.Entry
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("author_id = ?", authorID).
		Order("start, id").
		Find(&entries).Error
	return entries, err
}
