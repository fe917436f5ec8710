package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/services"
	"github.com/jobboard-dev/jobboard/internal/types"
	"github.com/jobboard-dev/jobboard/internal/utils"
)

type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) ListJobs(ctx *gin.Context) {
	filter := repositories.JobFilter{
		Keyword:  ctx.Query("keyword"),
		Location: ctx.Query("location"),
		JobType:  models.JobType(ctx.Query("jobType")),
		Category: ctx.Query("category"),
	}

	jobs, err := h.jobs.List(ctx.Request.Context(), filter)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondList(ctx, types.NewJobResponses(jobs))
}

func (h *JobHandler) GetJob(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id", "Job")

	if err != nil {
		respondError(ctx, apperrors.NotFound("Job"))
		return
	}

	job, err := h.jobs.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, types.NewJobResponse(job))
}

func (h *JobHandler) ListMyJobs(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	jobs, err := h.jobs.ListMine(ctx.Request.Context(), identity)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondList(ctx, types.NewJobResponses(jobs))
}

func (h *JobHandler) CreateJob(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	var req services.JobInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidBody())
		return
	}

	job, err := h.jobs.Create(ctx.Request.Context(), identity, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, types.NewJobResponse(job))
}

func (h *JobHandler) UpdateJob(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	id, err := utils.GetPathID(ctx, "id", "Job")

	if err != nil {
		respondError(ctx, apperrors.NotFound("Job"))
		return
	}

	var req services.JobPatch

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidBody())
		return
	}

	job, err := h.jobs.Update(ctx.Request.Context(), identity, id, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, types.NewJobResponse(job))
}

func (h *JobHandler) DeleteJob(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	id, err := utils.GetPathID(ctx, "id", "Job")

	if err != nil {
		respondError(ctx, apperrors.NotFound("Job"))
		return
	}

	if err := h.jobs.Delete(ctx.Request.Context(), identity, id); err != nil {
		respondError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, gin.H{})
}
