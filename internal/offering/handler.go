package offering

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mantas/appointments/internal/apperrors"
)

type CreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gt=0"`
	Category    Category `json:"category" binding:"required,oneof=HAIRCARE NAILS SKINCARE MASSAGE DIET FITNESS OTHER"`
}

type UpdateRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gt=0"`
	Category    *Category `json:"category" binding:"omitempty,oneof=HAIRCARE NAILS SKINCARE MASSAGE DIET FITNESS OTHER"`
}

var requestMessages = apperrors.FieldMessages{
	"Name.required":     "Service name cannot be blank",
	"Name.min":          "Service name cannot be blank",
	"Price.required":    "Service price cannot be null",
	"Price.gt":          "Service price must be greater than zero",
	"Category.required": "Service category cannot be null",
	"Category.oneof":    "Invalid value for field 'category'. Allowed values are: [HAIRCARE, NAILS, SKINCARE, MASSAGE, DIET, FITNESS, OTHER]",
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/services", h.List)
	r.GET("/services/:id", h.Get)
	r.POST("/services", h.Create)
	r.PUT("/services/:id", h.Update)
	r.DELETE("/services/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if out == nil {
		out = []OfferedService{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respond(c, id, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.BindingError(err, requestMessages))
		return
	}

	s, err := h.service.Create(c.Request.Context(), OfferedService{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.BindingError(err, requestMessages))
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		respond(c, id, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respond(c, id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("id", "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func respond(c *gin.Context, id uint64, err error) {
	if errors.Is(err, ErrNotFound) {
		apperrors.Respond(c, apperrors.NotFound(fmt.Sprintf("Service not found with id: %d", id)))
		return
	}
	apperrors.Respond(c, err)
}
