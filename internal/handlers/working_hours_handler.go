package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/httperr"
	"github.com/barberlink/booking-api/internal/middleware"
)

type WorkingHoursHandler struct {
	providers domain.ProviderRepository
}

func NewWorkingHoursHandler(providers domain.ProviderRepository) *WorkingHoursHandler {
	return &WorkingHoursHandler{providers: providers}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	ws, err := h.providers.WeekScheduleFor(c.Request.Context(), barberID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	days := make([]WorkingDayConfig, 0, 7)
	for _, d := range ws.Days() {
		days = append(days, WorkingDayConfig{
			Weekday:   int(d.Weekday),
			Active:    d.Working,
			StartTime: d.Start,
			EndTime:   d.End,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"days":               days,
		"total_working_days": ws.TotalWorkingDays(),
		"total_weekly_hours": ws.TotalWeeklyHours(),
	})
}

// Update replaces the weekly template wholesale. The whole schedule
// must validate before anything is written.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	days := make([]domain.DaySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, domain.DaySchedule{
			Weekday: time.Weekday(d.Weekday),
			Working: d.Active,
			Start:   d.StartTime,
			End:     d.EndTime,
		})
	}

	ws, err := domain.NewWeekSchedule(days)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.providers.ReplaceWeekSchedule(c.Request.Context(), barberID, ws); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
