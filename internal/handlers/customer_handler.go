package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberlink/booking-api/internal/dto"
	"github.com/barberlink/booking-api/internal/httperr"
	"github.com/barberlink/booking-api/internal/httpresp"
	"github.com/barberlink/booking-api/internal/middleware"
	"github.com/barberlink/booking-api/internal/models"
	ucBooking "github.com/barberlink/booking-api/internal/usecase/booking"
)

type CustomerHandler struct {
	db             *gorm.DB
	listBookingsUC *ucBooking.ListBookingsByCustomer
}

func NewCustomerHandler(db *gorm.DB, listBookingsUC *ucBooking.ListBookingsByCustomer) *CustomerHandler {
	return &CustomerHandler{db: db, listBookingsUC: listBookingsUC}
}

func (h *CustomerHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("barbershop_id = ?", barbershopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// ListBookings returns the customer's booking history across all
// barbers of the shop.
func (h *CustomerHandler) ListBookings(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	list, err := h.listBookingsUC.Execute(c.Request.Context(), barbershopID, uint(customerID))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(list))
}
