package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberlink/booking-api/internal/httperr"
	"github.com/barberlink/booking-api/internal/httpresp"
	"github.com/barberlink/booking-api/internal/middleware"
	"github.com/barberlink/booking-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	DurationMin    int     `json:"duration_min" binding:"required"`
	Price          float64 `json:"price"`
	Category       string  `json:"category"`
	RequiredSkills string  `json:"required_skills"`
}

type UpdateServiceRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	DurationMin    *int     `json:"duration_min"`
	Price          *float64 `json:"price"`
	Category       *string  `json:"category"`
	RequiredSkills *string  `json:"required_skills"`
	Active         *bool    `json:"active"`
}

func validDuration(minutes int) bool {
	return minutes >= models.MinServiceDurationMin && minutes <= models.MaxServiceDurationMin
}

func (h *ServiceHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !validDuration(req.DurationMin) {
		httperr.BadRequest(c, "invalid_duration", "Duration must be between 1 and 480 minutes.")
		return
	}

	svc := models.Service{
		BarbershopID:   barbershopID,
		Name:           req.Name,
		Description:    req.Description,
		DurationMin:    req.DurationMin,
		Price:          req.Price,
		Category:       req.Category,
		RequiredSkills: req.RequiredSkills,
		Active:         true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.DurationMin != nil {
		if !validDuration(*req.DurationMin) {
			httperr.BadRequest(c, "invalid_duration", "Duration must be between 1 and 480 minutes.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.RequiredSkills != nil {
		svc.RequiredSkills = *req.RequiredSkills
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	httpresp.OK(c, svc)
}
