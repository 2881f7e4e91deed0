package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"timetracker/internal/models"
)

// ClientRepository provides methods to interact with the Client model in the database.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// GetAuthoredClient retrieves a Client by its ID, only if it was authored by the given user.
func (r *ClientRepository) GetAuthoredClient(ctx context.Context, id uint, authorID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).First(&client, "id = ?", id).Error
	return &client, err
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Omit("Author", "Projects").Save(client).Error
}

// ListClients retrieves all Clients, regardless of author.
func (r *ClientRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) ClientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
