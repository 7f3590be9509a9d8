package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mercatto/inventory-service/app/products"
	"github.com/mercatto/inventory-service/app/validation"
)

// ProductService is the slice of the product service the handler
// needs.
type ProductService interface {
	List() ([]products.ProductView, error)
	Get(id uint) (products.ProductView, error)
	ListByCategory(categoryID uint) ([]products.ProductView, error)
	SearchByName(fragment string) ([]products.ProductView, error)
	ListLowStock(threshold int) ([]products.ProductView, error)
	Create(input products.ProductInput) (products.ProductView, error)
	Update(id uint, input products.ProductInput) (products.ProductView, error)
	Delete(id uint) error
}

// ProductRequest is the payload for create and update. The price
// decodes from a JSON number into an exact decimal.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=150"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  uint            `json:"categoryId" validate:"required"`
}

func (r ProductRequest) violations() []validation.Violation {
	violations := validation.Check(r)
	// The validator cannot compare decimals, so the price rule lives
	// here.
	if r.Price.IsNegative() {
		violations = append(violations, validation.Violation{
			Field:   "price",
			Message: "must be non-negative",
		})
	}
	return violations
}

func (r ProductRequest) toInput() products.ProductInput {
	return products.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
	}
}

type ProductHandler struct {
	service ProductService
	log     *logrus.Logger
}

func NewProductHandler(service ProductService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/products")
	{
		group.GET("", h.List)
		group.GET("/low-stock", h.ListLowStock)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

// List dispatches on query params: categoryId wins, then a non-blank
// search fragment, otherwise everything.
func (h *ProductHandler) List(c *gin.Context) {
	var (
		views []products.ProductView
		err   error
	)

	switch {
	case c.Query("categoryId") != "":
		categoryID, ok := parseID(c.Query("categoryId"))
		if !ok {
			respondBadRequest(c, "invalid categoryId")
			return
		}
		views, err = h.service.ListByCategory(categoryID)
	case strings.TrimSpace(c.Query("search")) != "":
		views, err = h.service.SearchByName(c.Query("search"))
	default:
		views, err = h.service.List()
	}

	if err != nil {
		h.log.WithError(err).Error("failed to list products")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) ListLowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", "10"))
	if err != nil {
		respondBadRequest(c, "invalid threshold")
		return
	}

	views, err := h.service.ListLowStock(threshold)
	if err != nil {
		h.log.WithError(err).Error("failed to list low-stock products")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "invalid product id")
		return
	}

	view, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if violations := req.violations(); violations != nil {
		respondViolations(c, violations)
		return
	}

	view, err := h.service.Create(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "invalid product id")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if violations := req.violations(); violations != nil {
		respondViolations(c, violations)
		return
	}

	view, err := h.service.Update(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "invalid product id")
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
