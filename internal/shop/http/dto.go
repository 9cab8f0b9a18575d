package http

import (
	"time"

	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
	"github.com/shopslot/shop-booking-backend/internal/shop"
)

// ShopTag is the minimal shop reference embedded in other responses.
type ShopTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ShopResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewShopResponse(s *shop.Shop) ShopResponse {
	return ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

type CreateShopBody struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type UpdateShopBody struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

type ScheduleResponse struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Enabled   bool   `json:"enabled"`
}

func NewScheduleResponse(sc shop.Schedule) ScheduleResponse {
	return ScheduleResponse{
		Weekday:   int(sc.Weekday),
		StartTime: timeutil.FormatClock(sc.StartMin),
		EndTime:   timeutil.FormatClock(sc.EndMin),
		Enabled:   sc.Enabled,
	}
}

type BreakResponse struct {
	ID        string `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Name      string `json:"name"`
}

func NewBreakResponse(b shop.Break) BreakResponse {
	return BreakResponse{
		ID:        b.ID,
		Weekday:   int(b.Weekday),
		StartTime: timeutil.FormatClock(b.StartMin),
		EndTime:   timeutil.FormatClock(b.EndMin),
		Name:      b.Name,
	}
}

type WeekResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Breaks    []BreakResponse    `json:"breaks"`
}

func NewWeekResponse(w *shop.Week) WeekResponse {
	resp := WeekResponse{
		Schedules: make([]ScheduleResponse, len(w.Schedules)),
		Breaks:    make([]BreakResponse, len(w.Breaks)),
	}
	for i, sc := range w.Schedules {
		resp.Schedules[i] = NewScheduleResponse(sc)
	}
	for i, b := range w.Breaks {
		resp.Breaks[i] = NewBreakResponse(b)
	}
	return resp
}

type SetScheduleBody struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Enabled   bool   `json:"enabled"`
}

type AddBreakBody struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Name      string `json:"name" binding:"required"`
}
