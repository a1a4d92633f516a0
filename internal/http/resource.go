package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/busfleet/internal/http/middleware"
	"github.com/nurpe/busfleet/internal/service"
)

type resourceHandler[T any] struct {
	svc Resource[T]
	h   *Handler
}

// registerResource mounts list/get for any principal and the mutating
// routes for admins only.
func registerResource[T any](group *gin.RouterGroup, path string, svc Resource[T], h *Handler) {
	rh := &resourceHandler[T]{svc: svc, h: h}
	g := group.Group(path)
	g.GET("", rh.list)
	g.GET("/:id", rh.get)

	admin := g.Group("", middleware.RequireAdmin())
	admin.POST("", rh.create)
	admin.PUT("/:id", rh.update)
	admin.DELETE("/:id", rh.delete)
}

func (rh *resourceHandler[T]) list(c *gin.Context) {
	items, err := rh.svc.List(c.Request.Context(), service.ListFilter{
		Depot:  c.Query("depot"),
		Status: c.Query("status"),
		Date:   c.Query("date"),
	})
	if err != nil {
		rh.h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (rh *resourceHandler[T]) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := rh.svc.Get(c.Request.Context(), id)
	if err != nil {
		rh.h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (rh *resourceHandler[T]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := rh.svc.Create(c.Request.Context(), &item)
	if err != nil {
		rh.h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rh *resourceHandler[T]) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := rh.svc.Update(c.Request.Context(), id, &item)
	if err != nil {
		rh.h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (rh *resourceHandler[T]) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := rh.svc.Delete(c.Request.Context(), id); err != nil {
		rh.h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
