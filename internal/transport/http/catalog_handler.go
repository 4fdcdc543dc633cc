package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/domain"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog  *usecase.CatalogUseCase
	currency string
	log      *logger.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUseCase, currency string, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, currency: currency, log: log.With("handler", "Catalog")}
}

// GET /api/search?title=
func (h *CatalogHandler) Search(c *gin.Context) {
	caller, _ := middleware.Identity(c)

	entries, err := h.catalog.Search(c.Request.Context(), caller, c.Query("title"))
	if err != nil {
		writeError(c, h.log, "[SEARCH]", err)
		return
	}

	resp := make([]catalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, newCatalogEntryResponse(e, h.currency))
	}
	c.JSON(http.StatusOK, resp)
}

type searchCard struct {
	ID           string
	Title        string
	ImageURL     string
	Owner        string
	ChapterCount int
	PriceLabel   string
	Purchased    bool
	Progress     string
}

type searchPage struct {
	Query   string
	Courses []searchCard
}

// GET /dashboard/search?title=
// Without a session the visitor is sent back to the landing page.
func (h *CatalogHandler) SearchPage(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	query := strings.TrimSpace(c.Query("title"))
	entries, err := h.catalog.Search(c.Request.Context(), caller, query)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		writeError(c, h.log, "[SEARCH_PAGE]", err)
		return
	}

	page := searchPage{Query: query, Courses: make([]searchCard, 0, len(entries))}
	for _, e := range entries {
		card := searchCard{
			ID:           e.Course.ID.String(),
			Title:        e.Course.Title,
			ChapterCount: len(e.Course.Chapters),
			PriceLabel:   usecase.PriceLabel(e.Course.Price, h.currency),
			Purchased:    e.Purchased,
			Progress:     fmt.Sprintf("%.0f%%", e.Progress),
		}
		if e.Course.ImageURL != nil {
			card.ImageURL = *e.Course.ImageURL
		}
		if e.Course.Owner != nil {
			card.Owner = e.Course.Owner.FullName
		}
		page.Courses = append(page.Courses, card)
	}

	c.HTML(http.StatusOK, "search.html", page)
}
