package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the middleware settings routes need.
type HandlerBundle struct {
	RoleTokenSecret   []byte
	MaxRequestsPerMin int

	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc

	// Console endpoints
	RecentAuditsHandler gin.HandlerFunc
	SLAHandler          gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires a BookingHandler into a bundle.
func NewHandlerBundle(bh *BookingHandler, health gin.HandlerFunc, secret []byte, maxRequestsPerMin int) *HandlerBundle {
	return &HandlerBundle{
		RoleTokenSecret:      secret,
		MaxRequestsPerMin:    maxRequestsPerMin,
		CreateBookingHandler: bh.CreateBookingHandler,
		ListBookingsHandler:  bh.ListBookingsHandler,
		GetBookingHandler:    bh.GetBookingHandler,
		UpdateBookingHandler: bh.UpdateBookingHandler,
		RecentAuditsHandler:  bh.RecentAuditsHandler,
		SLAHandler:           bh.SLAHandler,
		HealthHandler:        health,
	}
}
