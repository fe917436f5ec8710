package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/services"
	"github.com/jobboard-dev/jobboard/internal/types"
	"github.com/jobboard-dev/jobboard/internal/utils"
)

type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func authResponse(session *services.Session) types.AuthResponse {
	return types.AuthResponse{
		UserResponse: types.NewUserResponse(session.User),
		Token:        session.Token,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req services.RegisterInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx.Request.Context(), "failed to bind JSON", "error", err.Error())
		respondError(ctx, invalidBody())
		return
	}

	session, err := h.identity.Register(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, authResponse(session))
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req services.LoginInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidBody())
		return
	}

	session, err := h.identity.Login(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, authResponse(session))
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	user, err := h.identity.GetProfile(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)

	if err != nil {
		respondError(ctx, notAuthenticated())
		return
	}

	var req services.ProfileInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidBody())
		return
	}

	session, err := h.identity.UpdateProfile(ctx.Request.Context(), identity, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, authResponse(session))
}

func (h *AuthHandler) GetProfile(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id", "User")

	if err != nil {
		respondError(ctx, invalidBody())
		return
	}

	user, err := h.identity.GetProfile(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}
