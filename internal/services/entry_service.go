package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timetracker/internal/forms"
	"timetracker/internal/models"
	"timetracker/internal/repository"
)

type EntryService struct {
	repo     *repository.EntryRepository
	projects *repository.ProjectRepository
}

func NewEntryService(repo *repository.EntryRepository, projects *repository.ProjectRepository) *EntryService {
	return &EntryService{
		repo:     repo,
		projects: projects,
	}
}

// ListEntries returns only the entries authored by authorID.
func (s *EntryService) ListEntries(ctx context.Context, authorID uuid.UUID) ([]models.Entry, error) {
	entries, err := s.repo.ListEntriesByAuthor(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list entries")
	}
	return entries, nil
}

// CreateEntry validates the form and stores a new entry authored by authorID.
// A blank start defaults to now. Stop is not checked against start.
func (s *EntryService) CreateEntry(ctx context.Context, authorID uuid.UUID, form forms.EntryForm) (*models.Entry, error) {
	errs := forms.Validate(&form)
	if errs == nil {
		errs = forms.Errors{}
	}
	if id := form.ProjectID(); id != 0 {
		exists, err := s.projects.ProjectExists(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "failed to look up project")
		}
		if !exists {
			errs.Add("project", forms.MsgInvalidChoice)
		}
	}
	if errs.Any() {
		return nil, errs
	}

	entry := &models.Entry{
		Stop:        form.StopTime(),
		ProjectID:   form.ProjectID(),
		Description: form.Description,
		AuthorID:    &authorID,
	}
	if start := form.StartTime(); start != nil {
		entry.Start = *start
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to save entry")
	}
	return entry, nil
}
