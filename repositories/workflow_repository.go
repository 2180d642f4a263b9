package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"synthflow/models"
)

// WorkflowRepository defines persistence operations for workflow records.
type WorkflowRepository interface {
	Create(ctx context.Context, workflow *models.Workflow) error
	FindByID(ctx context.Context, id string) (*models.Workflow, error)
	// FindPage returns one page of the owner's workflows ordered by creation
	// time descending, plus the owner's total count.
	FindPage(ctx context.Context, ownerID string, page, perPage int) ([]models.Workflow, int64, error)
	Update(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, workflow *models.Workflow) error
}

type workflowRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new WorkflowRepository instance.
func NewWorkflowRepository(db *gorm.DB) WorkflowRepository {
	return &workflowRepositoryImpl{db: db}
}

func (r *workflowRepositoryImpl) Create(ctx context.Context, workflow *models.Workflow) error {
	if err := r.db.WithContext(ctx).Create(workflow).Error; err != nil {
		return fmt.Errorf("failed to create workflow: %w", err)
	}
	return nil
}

func (r *workflowRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Workflow, error) {
	var workflow models.Workflow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&workflow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find workflow: %w", err)
	}
	return &workflow, nil
}

func (r *workflowRepositoryImpl) FindPage(ctx context.Context, ownerID string, page, perPage int) ([]models.Workflow, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Workflow{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workflows: %w", err)
	}

	var workflows []models.Workflow
	err = r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&workflows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workflows: %w", err)
	}
	return workflows, total, nil
}

func (r *workflowRepositoryImpl) Update(ctx context.Context, workflow *models.Workflow) error {
	if err := r.db.WithContext(ctx).Save(workflow).Error; err != nil {
		return fmt.Errorf("failed to update workflow: %w", err)
	}
	return nil
}

// Delete removes the workflow; runs and node logs go with it via the
// cascading foreign keys.
func (r *workflowRepositoryImpl) Delete(ctx context.Context, workflow *models.Workflow) error {
	if err := r.db.WithContext(ctx).Delete(workflow).Error; err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	return nil
}
