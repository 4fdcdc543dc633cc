package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CourseHandler struct {
	courses  *usecase.CourseUseCase
	currency string
	log      *logger.Logger
}

func NewCourseHandler(courses *usecase.CourseUseCase, currency string, log *logger.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, currency: currency, log: log.With("handler", "Course")}
}

type createCourseReq struct {
	Title string `json:"title" binding:"required"`
}

type updateCourseReq struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
	Price       *decimal.Decimal `json:"price"`
	IsFree      bool             `json:"isFree"`
	Grade       *string          `json:"grade"`
	Divisions   *[]string        `json:"divisions"`
	Curriculum  *string          `json:"curriculum"`
}

// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	caller, _ := middleware.Identity(c)

	var req createCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courses.Create(c.Request.Context(), caller, usecase.NewCourse{Title: req.Title})
	if err != nil {
		writeError(c, h.log, "[COURSES]", err)
		return
	}
	c.JSON(http.StatusCreated, newCourseResponse(course, h.currency))
}

// GET /api/courses/:courseId
func (h *CourseHandler) Get(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	course, err := h.courses.Get(c.Request.Context(), caller, courseID)
	if err != nil {
		writeError(c, h.log, "[COURSE_ID]", err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course, h.currency))
}

// PATCH /api/courses/:courseId
func (h *CourseHandler) Update(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	var req updateCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courses.Update(c.Request.Context(), caller, courseID, usecase.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       usecase.PriceForm{Price: req.Price, IsFree: req.IsFree},
		Grade:       req.Grade,
		Curriculum:  req.Curriculum,
		Divisions:   req.Divisions,
	})
	if err != nil {
		writeError(c, h.log, "[COURSE_ID]", err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course, h.currency))
}

// DELETE /api/courses/:courseId
func (h *CourseHandler) Delete(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	if err := h.courses.Delete(c.Request.Context(), caller, courseID); err != nil {
		writeError(c, h.log, "[COURSE_ID_DELETE]", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PATCH /api/courses/:courseId/publish
func (h *CourseHandler) TogglePublish(c *gin.Context) {
	caller, _ := middleware.Identity(c)
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	course, err := h.courses.TogglePublish(c.Request.Context(), caller, courseID)
	if err != nil {
		writeError(c, h.log, "[COURSE_PUBLISH]", err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course, h.currency))
}
