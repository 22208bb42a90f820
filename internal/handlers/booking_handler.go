package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberlink/booking-api/internal/dto"
	"github.com/barberlink/booking-api/internal/httperr"
	"github.com/barberlink/booking-api/internal/httpresp"
	"github.com/barberlink/booking-api/internal/middleware"
	ucBooking "github.com/barberlink/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC       *ucBooking.CreateBooking
	confirmUC      *ucBooking.ConfirmBooking
	startUC        *ucBooking.StartBooking
	completeUC     *ucBooking.CompleteBooking
	cancelUC       *ucBooking.CancelBooking
	rescheduleUC   *ucBooking.RescheduleBooking
	noShowUC       *ucBooking.MarkNoShow
	availabilityUC *ucBooking.GetAvailability
	listByDateUC   *ucBooking.ListBookingsByDate
	listByMonthUC  *ucBooking.ListBookingsByMonth
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	startUC *ucBooking.StartBooking,
	completeUC *ucBooking.CompleteBooking,
	cancelUC *ucBooking.CancelBooking,
	rescheduleUC *ucBooking.RescheduleBooking,
	noShowUC *ucBooking.MarkNoShow,
	availabilityUC *ucBooking.GetAvailability,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		createUC:       createUC,
		confirmUC:      confirmUC,
		startUC:        startUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		rescheduleUC:   rescheduleUC,
		noShowUC:       noShowUC,
		availabilityUC: availabilityUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CompleteBookingRequest struct {
	Notes string `json:"notes"`
}

type RescheduleBookingRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// WRITE ENDPOINTS
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarbershopID:  barbershopID,
		BarberID:      barberID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,

		// Staff can squeeze bookings inside the public advance window.
		SkipAdvanceCheck: true,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(b))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, bookingID uint) (any, error) {
		b, err := h.confirmUC.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
		if err != nil {
			return nil, err
		}
		return dto.FromBooking(b), nil
	})
}

func (h *BookingHandler) Start(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, bookingID uint) (any, error) {
		b, err := h.startUC.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
		if err != nil {
			return nil, err
		}
		return dto.FromBooking(b), nil
	})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	var req CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	h.transition(c, func(barbershopID, barberID, bookingID uint) (any, error) {
		b, err := h.completeUC.Execute(c.Request.Context(), barbershopID, barberID, bookingID, req.Notes)
		if err != nil {
			return nil, err
		}
		return dto.FromBooking(b), nil
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cancellation reason is required.")
		return
	}

	h.transition(c, func(barbershopID, barberID, bookingID uint) (any, error) {
		b, err := h.cancelUC.Execute(c.Request.Context(), barbershopID, barberID, bookingID, req.Reason)
		if err != nil {
			return nil, err
		}
		return dto.FromBooking(b), nil
	})
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "New date and time are required.")
		return
	}

	h.transition(c, func(barbershopID, barberID, bookingID uint) (any, error) {
		b, err := h.rescheduleUC.Execute(c.Request.Context(), ucBooking.RescheduleBookingInput{
			BarbershopID: barbershopID,
			BarberID:     barberID,
			BookingID:    bookingID,
			Date:         req.Date,
			Time:         req.Time,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromBooking(b), nil
	})
}

func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, bookingID uint) (any, error) {
		b, err := h.noShowUC.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
		if err != nil {
			return nil, err
		}
		return dto.FromBooking(b), nil
	})
}

func (h *BookingHandler) transition(
	c *gin.Context,
	run func(barbershopID, barberID, bookingID uint) (any, error),
) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	resp, err := run(barbershopID, barberID, uint(bookingID))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, resp)
}

// ======================================================
// READ ENDPOINTS
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	interval, _ := strconv.Atoi(c.DefaultQuery("interval", "0"))

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucBooking.GetAvailabilityInput{
		BarbershopID:    barbershopID,
		BarberID:        barberID,
		ServiceID:       uint(serviceID),
		Date:            c.Query("date"),
		IntervalMinutes: interval,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dto.FromAvailableSlots(slots))
}

func (h *BookingHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	list, err := h.listByDateUC.Execute(c.Request.Context(), barbershopID, barberID, c.Query("date"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(list))
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	list, err := h.listByMonthUC.Execute(c.Request.Context(), barbershopID, barberID, year, time.Month(month))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(list))
}
