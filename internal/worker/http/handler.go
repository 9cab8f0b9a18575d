package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopslot/shop-booking-backend/internal/pkg/response"
	"github.com/shopslot/shop-booking-backend/internal/worker"
)

type Handler struct {
	service worker.Service
}

func NewHandler(service worker.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := worker.Filter{
		ShopID:   c.Query("shop_id"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	workers, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		items[i] = NewWorkerResponse(w)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	w, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWorkerResponse(w))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateWorkerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	w, err := h.service.Create(c.Request.Context(), worker.CreateRequest{
		Name:   body.Name,
		Status: worker.Status(body.Status),
		ShopID: body.ShopID,
	})
	if err != nil {
		switch {
		case errors.Is(err, worker.ErrEmptyName), errors.Is(err, worker.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, worker.ErrInvalidShop):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewWorkerResponse(w))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateWorkerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var status *worker.Status
	if body.Status != nil {
		st := worker.Status(*body.Status)
		status = &st
	}

	w, err := h.service.Update(c.Request.Context(), id, worker.UpdateRequest{
		Name:      body.Name,
		Status:    status,
		ShopID:    body.ShopID,
		ClearShop: body.ClearShop,
	})
	if err != nil {
		switch {
		case errors.Is(err, worker.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
		case errors.Is(err, worker.ErrEmptyName), errors.Is(err, worker.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, worker.ErrInvalidShop):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewWorkerResponse(w))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SetServices(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetServicesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	w, err := h.service.SetServices(c.Request.Context(), id, body.ServiceIDs)
	if err != nil {
		switch {
		case errors.Is(err, worker.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
		case errors.Is(err, worker.ErrInvalidService):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewWorkerResponse(w))
}
