package repositories

import (
	"context"

	"github.com/servicehub/backend/internal/domain/entities"
)

// ComplaintRepository defines the interface for complaint data operations
type ComplaintRepository interface {
	// Create persists a new complaint
	Create(ctx context.Context, complaint *entities.Complaint) error

	// GetByID retrieves a complaint by ID
	GetByID(ctx context.Context, id string) (*entities.Complaint, error)

	// ListAll retrieves all complaints, newest first
	ListAll(ctx context.Context) ([]*entities.Complaint, error)

	// UpdateStatus sets the handling status of a complaint
	UpdateStatus(ctx context.Context, id string, status entities.ComplaintStatus) error
}
