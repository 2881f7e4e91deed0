package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timetracker/internal/forms"
	"timetracker/internal/models"
	"timetracker/internal/repository"
)

type ClientService struct {
	repo *repository.ClientRepository
}

func NewClientService(repo *repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// ListClients returns every client, whoever authored it.
func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}
	return clients, nil
}

// CreateClient validates the form and stores a new client authored by authorID.
func (s *ClientService) CreateClient(ctx context.Context, authorID uuid.UUID, form forms.ClientForm) (*models.Client, error) {
	if errs := forms.Validate(&form); errs != nil {
		return nil, errs
	}
	client := &models.Client{Name: form.Name, AuthorID: &authorID}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, errors.Wrap(err, "failed to save client")
	}
	return client, nil
}

// GetAuthoredClient loads a client only if authorID wrote it; anything else is ErrNotFound.
func (s *ClientService) GetAuthoredClient(ctx context.Context, id uint, authorID uuid.UUID) (*models.Client, error) {
	client, err := s.repo.GetAuthoredClient(ctx, id, authorID)
	if err != nil {
		return nil, notFound(err, "failed to load client")
	}
	return client, nil
}

// UpdateClient validates the form and applies it to a client previously
// loaded through GetAuthoredClient. The author is never reassigned.
func (s *ClientService) UpdateClient(ctx context.Context, client *models.Client, form forms.ClientForm) error {
	if errs := forms.Validate(&form); errs != nil {
		return errs
	}
	client.Name = form.Name
	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return errors.Wrapf(err, "failed to update client %d", client.ID)
	}
	return nil
}
