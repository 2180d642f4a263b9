package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"synthflow/apperrors"
	"synthflow/models"
	"synthflow/repositories"
)

// CreateWorkflowInput carries the fields for a new workflow.
type CreateWorkflowInput struct {
	Name              string
	Description       string
	GraphData         datatypes.JSON
	ConcurrencyPolicy string
}

// UpdateWorkflowInput is a partial patch; nil fields are left untouched.
type UpdateWorkflowInput struct {
	Name              *string
	Description       *string
	GraphData         datatypes.JSON
	IsActive          *bool
	ConcurrencyPolicy *string
}

// WorkflowService provides ownership-scoped CRUD over workflow records.
type WorkflowService struct {
	workflows repositories.WorkflowRepository
}

func NewWorkflowService(workflows repositories.WorkflowRepository) *WorkflowService {
	return &WorkflowService{workflows: workflows}
}

func (s *WorkflowService) Create(ctx context.Context, ownerID string, input CreateWorkflowInput) (*models.Workflow, error) {
	policy := input.ConcurrencyPolicy
	if policy == "" {
		policy = models.ConcurrencyAllowParallel
	}
	graph := input.GraphData
	if graph == nil {
		graph = datatypes.JSON([]byte(`{}`))
	}

	workflow := &models.Workflow{
		OwnerID:           ownerID,
		Name:              input.Name,
		Description:       input.Description,
		GraphData:         graph,
		IsActive:          true,
		ConcurrencyPolicy: policy,
		Version:           1,
	}
	if err := s.workflows.Create(ctx, workflow); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"workflow_id": workflow.ID,
		"owner_id":    ownerID,
	}).Info("Workflow created")
	return workflow, nil
}

func (s *WorkflowService) List(ctx context.Context, ownerID string, page, perPage int) ([]models.Workflow, int64, error) {
	return s.workflows.FindPage(ctx, ownerID, page, perPage)
}

// Get loads a workflow and enforces ownership: a missing id is NotFound, an
// existing workflow owned by someone else is Forbidden. The mutating
// operations all go through here, so they inherit both checks.
func (s *WorkflowService) Get(ctx context.Context, workflowID, ownerID string) (*models.Workflow, error) {
	workflow, err := s.workflows.FindByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Workflow", workflowID)
		}
		return nil, err
	}
	if workflow.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return workflow, nil
}

// Update applies a partial patch and increments the version, regardless of
// which fields changed.
func (s *WorkflowService) Update(ctx context.Context, workflowID, ownerID string, input UpdateWorkflowInput) (*models.Workflow, error) {
	workflow, err := s.Get(ctx, workflowID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		workflow.Name = *input.Name
	}
	if input.Description != nil {
		workflow.Description = *input.Description
	}
	if input.GraphData != nil {
		workflow.GraphData = input.GraphData
	}
	if input.IsActive != nil {
		workflow.IsActive = *input.IsActive
	}
	if input.ConcurrencyPolicy != nil {
		workflow.ConcurrencyPolicy = *input.ConcurrencyPolicy
	}
	workflow.Version++

	if err := s.workflows.Update(ctx, workflow); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"workflow_id": workflow.ID,
		"version":     workflow.Version,
	}).Info("Workflow updated")
	return workflow, nil
}

func (s *WorkflowService) Delete(ctx context.Context, workflowID, ownerID string) error {
	workflow, err := s.Get(ctx, workflowID, ownerID)
	if err != nil {
		return err
	}
	if err := s.workflows.Delete(ctx, workflow); err != nil {
		return err
	}
	logrus.WithField("workflow_id", workflowID).Info("Workflow deleted")
	return nil
}
