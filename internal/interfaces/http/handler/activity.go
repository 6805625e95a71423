package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/smbc/backend/internal/application/ledger"
)

// Activities keeps the site log of construction projects
type Activities interface {
	Record(ctx context.Context, projectID uuid.UUID, req appledger.RecordActivitiesRequest, actor uuid.UUID) ([]appledger.ActivityResponse, error)
	List(ctx context.Context, projectID uuid.UUID) ([]appledger.ActivityResponse, error)
	Update(ctx context.Context, projectID, id uuid.UUID, req appledger.UpdateActivityRequest) (*appledger.ActivityResponse, error)
	Delete(ctx context.Context, projectID, id uuid.UUID) error
}

// ActivityHandler serves /construction/projects/:id/activities
type ActivityHandler struct {
	BaseHandler
	activities Activities
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activities Activities) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// Record godoc
// @ID           recordProjectActivities
// @Summary      Record site log lines for a project
// @Tags         construction
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body appledger.RecordActivitiesRequest true "Activities"
// @Success      201 {object} APIResponse[[]appledger.ActivityResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /construction/projects/{id}/activities [post]
func (h *ActivityHandler) Record(c *gin.Context) {
	projectID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appledger.RecordActivitiesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	resp, err := h.activities.Record(c.Request.Context(), projectID, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listProjectActivities
// @Summary      List a project's activities, latest first
// @Tags         construction
// @Router       /construction/projects/{id}/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	projectID, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.activities.List(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp))
}

// Update godoc
// @ID           updateProjectActivity
// @Summary      Edit a project activity
// @Tags         construction
// @Router       /construction/projects/{id}/activities/{activityId} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	projectID, activityID, ok := h.activityPath(c)
	if !ok {
		return
	}
	var req appledger.UpdateActivityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.activities.Update(c.Request.Context(), projectID, activityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteProjectActivity
// @Summary      Delete a project activity
// @Tags         construction
// @Router       /construction/projects/{id}/activities/{activityId} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	projectID, activityID, ok := h.activityPath(c)
	if !ok {
		return
	}
	if err := h.activities.Delete(c.Request.Context(), projectID, activityID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ActivityHandler) activityPath(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, ok := h.pathID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	activityID, ok := h.pathUUID(c, "activityId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, activityID, true
}
