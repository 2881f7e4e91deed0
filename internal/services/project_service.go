package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timetracker/internal/forms"
	"timetracker/internal/models"
	"timetracker/internal/repository"
)

type ProjectService struct {
	repo    *repository.ProjectRepository
	clients *repository.ClientRepository
}

func NewProjectService(repo *repository.ProjectRepository, clients *repository.ClientRepository) *ProjectService {
	return &ProjectService{
		repo:    repo,
		clients: clients,
	}
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	return projects, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, authorID uuid.UUID, form forms.ProjectForm) (*models.Project, error) {
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	project := &models.Project{
		ClientID: form.ClientID(),
		Name:     form.Name,
		AuthorID: &authorID,
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, errors.Wrap(err, "failed to save project")
	}
	return project, nil
}

func (s *ProjectService) GetAuthoredProject(ctx context.Context, id uint, authorID uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetAuthoredProject(ctx, id, authorID)
	if err != nil {
		return nil, notFound(err, "failed to load project")
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, project *models.Project, form forms.ProjectForm) error {
	if err := s.validate(ctx, &form); err != nil {
		return err
	}
	project.ClientID = form.ClientID()
	project.Client = nil
	project.Name = form.Name
	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return errors.Wrapf(err, "failed to update project %d", project.ID)
	}
	return nil
}

// validate runs the form rules and checks that a chosen client exists.
func (s *ProjectService) validate(ctx context.Context, form *forms.ProjectForm) error {
	errs := forms.Validate(form)
	if errs == nil {
		errs = forms.Errors{}
	}
	if id := form.ClientID(); id != nil {
		exists, err := s.clients.ClientExists(ctx, *id)
		if err != nil {
			return errors.Wrap(err, "failed to look up client")
		}
		if !exists {
			errs.Add("client", forms.MsgInvalidChoice)
		}
	}
	if errs.Any() {
		return errs
	}
	return nil
}
