package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopslot/shop-booking-backend/internal/pkg/response"
	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
	"github.com/shopslot/shop-booking-backend/internal/shop"
)

type Handler struct {
	service shop.Service
}

func NewHandler(service shop.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := shop.Filter{
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}

	shops, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ShopResponse, len(shops))
	for i, s := range shops {
		items[i] = NewShopResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewShopResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateShopBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.Create(c.Request.Context(), shop.CreateRequest{
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
	})
	if err != nil {
		if errors.Is(err, shop.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewShopResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateShopBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, shop.UpdateRequest{
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		case errors.Is(err, shop.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewShopResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Week(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	w, err := h.service.Week(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWeekResponse(w))
}

func (h *Handler) SetSchedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 0-6"})
		return
	}

	var body SetScheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startMin, err := timeutil.ParseClock(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	endMin, err := timeutil.ParseClock(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc, err := h.service.SetSchedule(c.Request.Context(), id, shop.SetScheduleRequest{
		Weekday:  time.Weekday(weekday),
		StartMin: startMin,
		EndMin:   endMin,
		Enabled:  body.Enabled,
	})
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		case errors.Is(err, shop.ErrInvalidTimeRange), errors.Is(err, shop.ErrInvalidWeekday):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(*sc))
}

func (h *Handler) AddBreak(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body AddBreakBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startMin, err := timeutil.ParseClock(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	endMin, err := timeutil.ParseClock(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.AddBreak(c.Request.Context(), id, shop.AddBreakRequest{
		Weekday:  time.Weekday(body.Weekday),
		StartMin: startMin,
		EndMin:   endMin,
		Name:     body.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		case errors.Is(err, shop.ErrInvalidTimeRange), errors.Is(err, shop.ErrInvalidWeekday):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewBreakResponse(*b))
}

func (h *Handler) RemoveBreak(c *gin.Context) {
	id := c.Param("id")
	breakID := c.Param("breakID")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if _, err := uuid.Parse(breakID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.RemoveBreak(c.Request.Context(), id, breakID); err != nil {
		switch {
		case errors.Is(err, shop.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		case errors.Is(err, shop.ErrBreakNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "break not found"})
		default:
			response.Error(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
