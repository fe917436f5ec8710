package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/services"
	"github.com/jobboard-dev/jobboard/internal/types"
	"github.com/jobboard-dev/jobboard/internal/utils"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) Apply(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	var req services.ApplyInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidBody())
		return
	}

	application, err := h.applications.Apply(ctx.Request.Context(), identity, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, types.NewApplicationResponse(application))
}

func (h *ApplicationHandler) ListMyApplications(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	applications, err := h.applications.ListMine(ctx.Request.Context(), identity)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondList(ctx, types.NewApplicationResponses(applications))
}

func (h *ApplicationHandler) ListJobApplications(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	jobID, err := utils.GetPathID(ctx, "jobId", "Job")

	if err != nil {
		respondError(ctx, apperrors.NotFound("Job"))
		return
	}

	applications, err := h.applications.ListByJob(ctx.Request.Context(), identity, jobID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondList(ctx, types.NewApplicationResponses(applications))
}

func (h *ApplicationHandler) UpdateStatus(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	id, err := utils.GetPathID(ctx, "id", "Application")

	if err != nil {
		respondError(ctx, apperrors.NotFound("Application"))
		return
	}

	var req UpdateStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidBody())
		return
	}

	application, err := h.applications.UpdateStatus(ctx.Request.Context(), identity, id, req.Status)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, types.NewApplicationResponse(application))
}
