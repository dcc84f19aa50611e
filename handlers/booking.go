package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookingops/middleware"
	"bookingops/models"
	"bookingops/services/booking"
	"bookingops/services/bookingops"
	"bookingops/services/intake"
	"bookingops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAuditLimit = 500

// BookingHandler exposes the booking pipeline and the operations console.
type BookingHandler struct {
	Service          bookingops.Service
	Logger           *zap.Logger
	RecentAuditLimit int
}

func NewBookingHandler(svc bookingops.Service, logger *zap.Logger, recentAuditLimit int) *BookingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recentAuditLimit <= 0 {
		recentAuditLimit = 40
	}
	return &BookingHandler{Service: svc, Logger: logger, RecentAuditLimit: recentAuditLimit}
}

// CreateBookingHandler accepts a public intake submission.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	record, err := h.Service.Submit(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": record})
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	role, _ := middleware.RoleFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"role":    role,
		"records": h.Service.ListBookings(c.Request.Context()),
	})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	record, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

// UpdateBookingHandler applies a console edit: status change and/or note.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var req bookingops.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "no role resolved for request")
		return
	}

	record, err := h.Service.Review(c.Request.Context(), c.Param("id"), req, role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

func (h *BookingHandler) RecentAuditsHandler(c *gin.Context) {
	limit := h.RecentAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", "limit must be a non-negative integer")
			return
		}
		limit = min(n, maxAuditLimit)
	}
	c.JSON(http.StatusOK, gin.H{"entries": h.Service.RecentAudits(c.Request.Context(), limit)})
}

func (h *BookingHandler) SLAHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sla": h.Service.SLA(c.Request.Context())})
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var (
		verrs     intake.ValidationErrors
		badStatus *booking.InvalidStatusError
		badAudit  *booking.InvalidAuditError
	)
	switch {
	case errors.As(err, &verrs):
		utils.JSONFieldErrors(c, http.StatusBadRequest, "Invalid booking intake", verrs)
	case errors.As(err, &badStatus):
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", badStatus.Error())
	case errors.As(err, &badAudit):
		utils.JSONError(c, http.StatusBadRequest, "Invalid audit entry", badAudit.Error())
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
	default:
		h.Logger.Error("Booking request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
	}
}
