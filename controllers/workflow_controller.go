package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"synthflow/metrics"
	"synthflow/middlewares"
	"synthflow/services"
)

// WorkflowController handles owner-scoped workflow CRUD.
type WorkflowController struct {
	workflowService *services.WorkflowService
	backendURL      string
}

func NewWorkflowController(workflowService *services.WorkflowService, backendURL string) *WorkflowController {
	return &WorkflowController{
		workflowService: workflowService,
		backendURL:      backendURL,
	}
}

func (wc *WorkflowController) Create(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}

	var req WorkflowCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	workflow, err := wc.workflowService.Create(c.Request().Context(), user.ID, services.CreateWorkflowInput{
		Name:              req.Name,
		Description:       req.Description,
		GraphData:         datatypes.JSON(req.GraphData),
		ConcurrencyPolicy: req.ConcurrencyPolicy,
	})
	if err != nil {
		return err
	}

	metrics.WorkflowOpsCounter.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, WorkflowCreateResponse{
		ID:         workflow.ID,
		Name:       workflow.Name,
		WebhookURL: fmt.Sprintf("%s/webhooks/%s", wc.backendURL, workflow.ID),
		CreatedAt:  workflow.CreatedAt,
	})
}

func (wc *WorkflowController) List(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}

	page := queryInt(c, "page", 1, 1, 0)
	perPage := queryInt(c, "per_page", 20, 1, 100)

	workflows, total, err := wc.workflowService.List(c.Request().Context(), user.ID, page, perPage)
	if err != nil {
		return err
	}

	items := make([]WorkflowListItem, 0, len(workflows))
	for _, wf := range workflows {
		items = append(items, WorkflowListItem{
			ID:          wf.ID,
			Name:        wf.Name,
			Description: wf.Description,
			IsActive:    wf.IsActive,
			NodeCount:   nodeCount(wf.GraphData),
			Version:     wf.Version,
			CreatedAt:   wf.CreatedAt,
			UpdatedAt:   wf.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, WorkflowListResponse{
		Workflows: items,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	})
}

func (wc *WorkflowController) Get(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}

	workflow, err := wc.workflowService.Get(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWorkflowResponse(workflow))
}

func (wc *WorkflowController) Update(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}

	var req WorkflowUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	workflow, err := wc.workflowService.Update(c.Request().Context(), c.Param("id"), user.ID, services.UpdateWorkflowInput{
		Name:              req.Name,
		Description:       req.Description,
		GraphData:         datatypes.JSON(req.GraphData),
		IsActive:          req.IsActive,
		ConcurrencyPolicy: req.ConcurrencyPolicy,
	})
	if err != nil {
		return err
	}

	metrics.WorkflowOpsCounter.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, newWorkflowResponse(workflow))
}

func (wc *WorkflowController) Delete(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}

	if err := wc.workflowService.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}

	metrics.WorkflowOpsCounter.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// queryInt parses a query parameter with a default and bounds; max 0 means
// unbounded.
func queryInt(c echo.Context, name string, def, min, max int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
