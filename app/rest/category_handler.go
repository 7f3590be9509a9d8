package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mercatto/inventory-service/app/categories"
	"github.com/mercatto/inventory-service/app/validation"
)

// CategoryService is the slice of the category service the handler
// needs.
type CategoryService interface {
	List() ([]categories.CategoryView, error)
	Get(id uint) (categories.CategoryView, error)
	Create(name string) (categories.CategoryView, error)
	Update(id uint, name string) (categories.CategoryView, error)
	Delete(id uint) error
}

// CategoryRequest is the payload for create and update.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CategoryHandler struct {
	service CategoryService
	log     *logrus.Logger
}

func NewCategoryHandler(service CategoryService, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/categories")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	views, err := h.service.List()
	if err != nil {
		h.log.WithError(err).Error("failed to list categories")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "invalid category id")
		return
	}

	view, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if violations := validation.Check(req); violations != nil {
		respondViolations(c, violations)
		return
	}

	view, err := h.service.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if violations := validation.Check(req); violations != nil {
		respondViolations(c, violations)
		return
	}

	view, err := h.service.Update(id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
