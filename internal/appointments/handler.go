package appointments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantas/appointments/internal/middleware"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/appointments/provider", h.Provider)
	r.GET("/appointments/client", h.Client)
	r.GET("/me", h.Me)
}

func (h *Handler) Provider(c *gin.Context) {
	c.String(http.StatusOK, "Welcome, Provider!")
}

func (h *Handler) Client(c *gin.Context) {
	c.String(http.StatusOK, "Welcome, Client!")
}

// Me echoes the authenticated principal.
func (h *Handler) Me(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	c.JSON(http.StatusOK, gin.H{"username": p.Username, "authorities": p.Authorities})
}
