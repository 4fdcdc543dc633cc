package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollment *usecase.EnrollmentUseCase
	log        *logger.Logger
}

func NewEnrollmentHandler(enrollment *usecase.EnrollmentUseCase, log *logger.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollment: enrollment, log: log.With("handler", "Enrollment")}
}

type progressReq struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// POST /api/courses/:courseId/checkout
func (h *EnrollmentHandler) Checkout(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	p, err := h.enrollment.Purchase(c.Request.Context(), caller, courseID)
	if err != nil {
		writeError(c, h.log, "[COURSE_CHECKOUT]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        p.ID,
		"userId":    p.UserID,
		"courseId":  p.CourseID,
		"createdAt": p.CreatedAt,
	})
}

// PUT /api/courses/:courseId/chapters/:chapterId/progress
func (h *EnrollmentHandler) SetProgress(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterId")
	if !ok {
		return
	}

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.enrollment.SetChapterCompleted(c.Request.Context(), caller, courseID, chapterID, *req.IsCompleted)
	if err != nil {
		writeError(c, h.log, "[CHAPTER_ID_PROGRESS]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          p.ID,
		"userId":      p.UserID,
		"chapterId":   p.ChapterID,
		"isCompleted": p.IsCompleted,
	})
}
