package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"timetracker/internal/models"
)

// ProjectRepository provides methods to interact with the Project model in the database.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance with the provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject creates a new Project in the database.
func (r *ProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetAuthoredProject retrieves a Project by its ID, only if it was authored by the given user.
func (r *ProjectRepository) GetAuthoredProject(ctx context.Context, id uint, authorID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Client").
		Where("author_id = ?", authorID).
		First(&project, "id = ?", id).Error
	return &project, err
}

// UpdateProject updates an existing Project in the database.
func (r *ProjectRepository) UpdateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Author", "Entries").Save(project).Error
}

// ListProjects retrieves all Projects from the database, regardless of author.
func (r *ProjectRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Preload("Client").Order("id").Find(&projects).Error
	return projects, err
}

// ProjectExists reports whether a Project with the given ID exists.
func (r *ProjectRepository) ProjectExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
