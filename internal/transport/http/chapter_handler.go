package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

type ChapterHandler struct {
	chapters *usecase.ChapterUseCase
	log      *logger.Logger
}

func NewChapterHandler(chapters *usecase.ChapterUseCase, log *logger.Logger) *ChapterHandler {
	return &ChapterHandler{chapters: chapters, log: log.With("handler", "Chapter")}
}

type chapterReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl"`
	IsFree      *bool   `json:"isFree"`
}

func (r chapterReq) input() usecase.ChapterInput {
	return usecase.ChapterInput{
		Title:       r.Title,
		Description: r.Description,
		VideoURL:    r.VideoURL,
		IsFree:      r.IsFree,
	}
}

// POST /api/courses/:courseId/chapters
func (h *ChapterHandler) Create(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	var req chapterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	ch, err := h.chapters.Create(c.Request.Context(), caller, courseID, req.input())
	if err != nil {
		writeError(c, h.log, "[CHAPTERS]", err)
		return
	}
	c.JSON(http.StatusCreated, newChapterResponse(ch))
}

// PATCH /api/courses/:courseId/chapters/:chapterId
func (h *ChapterHandler) Update(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterId")
	if !ok {
		return
	}

	var req chapterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	ch, err := h.chapters.Update(c.Request.Context(), caller, courseID, chapterID, req.input())
	if err != nil {
		writeError(c, h.log, "[CHAPTER_ID]", err)
		return
	}
	c.JSON(http.StatusOK, newChapterResponse(ch))
}

// PATCH /api/courses/:courseId/chapters/:chapterId/publish
func (h *ChapterHandler) TogglePublish(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterId")
	if !ok {
		return
	}

	ch, err := h.chapters.TogglePublish(c.Request.Context(), caller, courseID, chapterID)
	if err != nil {
		writeError(c, h.log, "[CHAPTER_PUBLISH]", err)
		return
	}
	c.JSON(http.StatusOK, newChapterResponse(ch))
}
