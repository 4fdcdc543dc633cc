package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/domain"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	auth *usecase.AuthUseCase
	log  *logger.Logger
}

func NewUserHandler(auth *usecase.AuthUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{auth: auth, log: log.With("handler", "User")}
}

type updateProfileReq struct {
	FullName   *string `json:"fullName"`
	Image      *string `json:"image"`
	Grade      *string `json:"grade"`
	Division   *string `json:"division"`
	Curriculum *string `json:"curriculum"`
}

type setRoleReq struct {
	Role string `json:"role" binding:"required"`
}

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	user, err := h.auth.Me(c.Request.Context(), caller)
	if err != nil {
		writeError(c, h.log, "[USER_ME]", err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// PATCH /api/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller, _ := middleware.Identity(c)

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), caller, usecase.ProfileUpdate{
		FullName:   req.FullName,
		Image:      req.Image,
		Grade:      req.Grade,
		Division:   req.Division,
		Curriculum: req.Curriculum,
	})
	if err != nil {
		writeError(c, h.log, "[USER_PROFILE]", err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// PATCH /api/users/:userId/role
func (h *UserHandler) SetRole(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req setRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.SetRole(c.Request.Context(), caller, userID, domain.Role(req.Role))
	if err != nil {
		writeError(c, h.log, "[USER_ROLE]", err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
