package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberlink/booking-api/internal/dto"
	"github.com/barberlink/booking-api/internal/httperr"
	"github.com/barberlink/booking-api/internal/httpresp"
	"github.com/barberlink/booking-api/internal/models"
	ucBooking "github.com/barberlink/booking-api/internal/usecase/booking"
)

// ======================================================
// PUBLIC BOOKING API (by shop slug, no auth)
// ======================================================

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucBooking.CreateBooking
	availabilityUC *ucBooking.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	availabilityUC *ucBooking.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.
		Where("slug = ?", c.Param("slug")).
		First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return nil, false
	}
	return &shop, true
}

// ListServices returns the shop's active services for the booking page.
func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

// ListBarbers returns the shop's active barbers so the booking page can
// offer a provider choice.
func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Select("id", "name", "skills").
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Failed to list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

// Availability answers the public slot query. barber_id is optional;
// when absent, every qualified barber of the shop is considered.
func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucBooking.GetAvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     uint(barberID),
		ServiceID:    uint(serviceID),
		Date:         c.Query("date"),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dto.FromAvailableSlots(slots))
}

type PublicCreateBookingRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

// CreateBooking books a slot for a walk-in customer. The shop's
// minimum-advance window applies here, unlike the staff endpoint.
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarbershopID:  shop.ID,
		BarberID:      req.BarberID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(b))
}
