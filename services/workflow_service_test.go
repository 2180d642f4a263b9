package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"synthflow/apperrors"
	"synthflow/models"
	"synthflow/repositories"
)

type mockWorkflowRepo struct {
	workflows map[string]*models.Workflow
	seq       int
}

func newMockWorkflowRepo() *mockWorkflowRepo {
	return &mockWorkflowRepo{workflows: make(map[string]*models.Workflow)}
}

func (m *mockWorkflowRepo) Create(ctx context.Context, workflow *models.Workflow) error {
	m.seq++
	workflow.ID = "wf-" + string(rune('0'+m.seq))
	m.workflows[workflow.ID] = workflow
	return nil
}

func (m *mockWorkflowRepo) FindByID(ctx context.Context, id string) (*models.Workflow, error) {
	if workflow, ok := m.workflows[id]; ok {
		copied := *workflow
		return &copied, nil
	}
	return nil, repositories.ErrRecordNotFound
}

func (m *mockWorkflowRepo) FindPage(ctx context.Context, ownerID string, page, perPage int) ([]models.Workflow, int64, error) {
	var owned []models.Workflow
	for _, workflow := range m.workflows {
		if workflow.OwnerID == ownerID {
			owned = append(owned, *workflow)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	total := int64(len(owned))
	start := (page - 1) * perPage
	if start >= len(owned) {
		return nil, total, nil
	}
	end := start + perPage
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (m *mockWorkflowRepo) Update(ctx context.Context, workflow *models.Workflow) error {
	m.workflows[workflow.ID] = workflow
	return nil
}

func (m *mockWorkflowRepo) Delete(ctx context.Context, workflow *models.Workflow) error {
	delete(m.workflows, workflow.ID)
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestWorkflowCreateDefaults(t *testing.T) {
	svc := NewWorkflowService(newMockWorkflowRepo())

	workflow, err := svc.Create(context.Background(), "owner-1", CreateWorkflowInput{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", workflow.OwnerID)
	assert.Equal(t, 1, workflow.Version)
	assert.True(t, workflow.IsActive)
	assert.Equal(t, models.ConcurrencyAllowParallel, workflow.ConcurrencyPolicy)
	assert.JSONEq(t, `{}`, string(workflow.GraphData))
}

func TestWorkflowUpdateIncrementsVersion(t *testing.T) {
	svc := NewWorkflowService(newMockWorkflowRepo())

	workflow, err := svc.Create(context.Background(), "owner-1", CreateWorkflowInput{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, 1, workflow.Version)

	// Version bumps on every update, even a no-op patch.
	updated, err := svc.Update(context.Background(), workflow.ID, "owner-1", UpdateWorkflowInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	updated, err = svc.Update(context.Background(), workflow.ID, "owner-1", UpdateWorkflowInput{Name: strPtr("Y")})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Version)
	assert.Equal(t, "Y", updated.Name)
}

func TestWorkflowUpdatePartialPatch(t *testing.T) {
	svc := NewWorkflowService(newMockWorkflowRepo())

	workflow, err := svc.Create(context.Background(), "owner-1", CreateWorkflowInput{
		Name:        "X",
		Description: "original",
		GraphData:   datatypes.JSON([]byte(`{"nodes":[{"id":"n1"}],"edges":[]}`)),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), workflow.ID, "owner-1", UpdateWorkflowInput{
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "X", updated.Name)
	assert.Equal(t, "original", updated.Description)
	assert.JSONEq(t, `{"nodes":[{"id":"n1"}],"edges":[]}`, string(updated.GraphData))
}

func TestWorkflowGetNotFound(t *testing.T) {
	svc := NewWorkflowService(newMockWorkflowRepo())

	_, err := svc.Get(context.Background(), "missing", "owner-1")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestWorkflowOwnershipScoping(t *testing.T) {
	repo := newMockWorkflowRepo()
	svc := NewWorkflowService(repo)

	workflow, err := svc.Create(context.Background(), "owner-1", CreateWorkflowInput{Name: "X"})
	require.NoError(t, err)

	// An existing workflow owned by someone else is Forbidden, not NotFound.
	_, err = svc.Get(context.Background(), workflow.ID, "owner-2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Update(context.Background(), workflow.ID, "owner-2", UpdateWorkflowInput{Name: strPtr("Y")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.Delete(context.Background(), workflow.ID, "owner-2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Owner still sees the untouched record.
	kept, err := svc.Get(context.Background(), workflow.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "X", kept.Name)
	assert.Equal(t, 1, kept.Version)
}

func TestWorkflowDelete(t *testing.T) {
	repo := newMockWorkflowRepo()
	svc := NewWorkflowService(repo)

	workflow, err := svc.Create(context.Background(), "owner-1", CreateWorkflowInput{Name: "X"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), workflow.ID, "owner-1"))

	_, err = svc.Get(context.Background(), workflow.ID, "owner-1")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestWorkflowListPagination(t *testing.T) {
	repo := newMockWorkflowRepo()
	svc := NewWorkflowService(repo)

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(context.Background(), "owner-1", CreateWorkflowInput{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), "owner-2", CreateWorkflowInput{Name: "D"})
	require.NoError(t, err)

	page, total, err := svc.List(context.Background(), "owner-1", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)

	page, total, err = svc.List(context.Background(), "owner-1", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)
}
