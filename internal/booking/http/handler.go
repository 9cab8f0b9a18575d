package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopslot/shop-booking-backend/internal/booking"
	"github.com/shopslot/shop-booking-backend/internal/pkg/response"
	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
	svc "github.com/shopslot/shop-booking-backend/internal/service"
	"github.com/shopslot/shop-booking-backend/internal/worker"
)

// anyWorker is the wire-level selector for "any eligible worker of the
// shop"; it never reaches the core, which keeps a tagged selector instead.
const anyWorker = "any"

type Handler struct {
	service  booking.Service
	resolver *booking.Resolver
}

func NewHandler(service booking.Service, resolver *booking.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// CheckAvailability answers "could this slot be booked right now". It is a
// read-only preview; the authoritative check happens again inside Create.
func (h *Handler) CheckAvailability(c *gin.Context) {
	date, err := timeutil.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startMin, err := timeutil.ParseClock(c.Query("start_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceID := c.Query("service_id")
	if _, err := uuid.Parse(serviceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_id"})
		return
	}

	workerID := c.Query("worker_id")
	shopID := c.Query("shop_id")

	switch {
	case workerID != "" && workerID != anyWorker:
		h.checkWorkerSlot(c, date, workerID, serviceID, startMin)
	case shopID != "":
		h.checkShopPool(c, date, shopID, serviceID, startMin)
	case workerID == anyWorker:
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required with worker_id=any"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "worker_id or shop_id is required"})
	}
}

func (h *Handler) checkWorkerSlot(c *gin.Context, date time.Time, workerID, serviceID string, startMin int) {
	if _, err := uuid.Parse(workerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker_id"})
		return
	}

	res, err := h.resolver.CheckSlot(c.Request.Context(), booking.SlotRequest{
		Date:      date,
		WorkerID:  workerID,
		ServiceID: serviceID,
		StartMin:  startMin,
	})
	if err != nil {
		switch {
		case errors.Is(err, worker.ErrNotFound):
			response.Error(c, booking.ErrWorkerNotFound)
		case errors.Is(err, svc.ErrNotFound):
			response.Error(c, booking.ErrServiceNotFound)
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		Available: res.Available,
		Reason:    string(res.Reason),
		Conflict:  NewConflictSlot(res.Conflict),
	})
}

func (h *Handler) checkShopPool(c *gin.Context, date time.Time, shopID, serviceID string, startMin int) {
	if _, err := uuid.Parse(shopID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop_id"})
		return
	}

	w, res, err := h.resolver.FindWorker(c.Request.Context(), booking.PoolRequest{
		Date:      date,
		ShopID:    shopID,
		ServiceID: serviceID,
		StartMin:  startMin,
	})
	if err != nil {
		if errors.Is(err, svc.ErrNotFound) {
			response.Error(c, booking.ErrServiceNotFound)
			return
		}
		response.Error(c, err)
		return
	}

	resp := AvailabilityResponse{
		Available: res.Available,
		Reason:    string(res.Reason),
		Reasons:   reasonStrings(res.Reasons),
	}
	if w != nil {
		resp.WorkerID = w.ID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pooled := body.WorkerID == nil || *body.WorkerID == "" || *body.WorkerID == anyWorker
	if pooled && body.ShopID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "worker_id or shop_id is required"})
		return
	}
	if !pooled {
		if _, err := uuid.Parse(*body.WorkerID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker_id"})
			return
		}
	}

	date, err := timeutil.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startMin, err := timeutil.ParseClock(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := booking.CreateRequest{
		Date:        date,
		StartMin:    startMin,
		ServiceID:   body.ServiceID,
		ClientName:  body.ClientName,
		ClientEmail: body.ClientEmail,
		Note:        body.Note,
	}
	if pooled {
		req.Worker = booking.AnyEligible()
		req.ShopID = *body.ShopID
	} else {
		req.Worker = booking.SpecificWorker(*body.WorkerID)
		if body.ShopID != nil {
			req.ShopID = *body.ShopID
		}
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := booking.Filter{
		WorkerID: c.Query("worker_id"),
		ShopID:   c.Query("shop_id"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}
	if from := c.Query("date_from"); from != "" {
		t, err := timeutil.ParseDate(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := timeutil.ParseDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.DateTo = &t
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) BlockDay(c *gin.Context) {
	var body BlockDayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := timeutil.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.BlockDay(c.Request.Context(), booking.BlockRequest{
		Date:     date,
		WorkerID: body.WorkerID,
		ShopID:   body.ShopID,
		Reason:   body.Reason,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) RemoveBlock(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.RemoveBlock(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError renders ConflictError as a structured 409 and defers everything
// else to the shared error responder.
func (h *Handler) writeError(c *gin.Context, err error) {
	var conflict *booking.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, ConflictResponse{
			Error:    "time slot unavailable",
			Reason:   string(conflict.Reason),
			Conflict: NewConflictSlot(conflict.Conflict),
			Reasons:  reasonStrings(conflict.Reasons),
		})
		return
	}
	response.Error(c, err)
}
