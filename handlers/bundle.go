package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	FrontendURL       string
	MaxRequestsPerMin int

	Health gin.HandlerFunc

	// Catalogue endpoints
	GetServices  gin.HandlerFunc
	GetTimeSlots gin.HandlerFunc

	// Vehicle endpoints
	LookupPlate gin.HandlerFunc

	// Booking endpoints
	StartSession        gin.HandlerFunc
	GetSession          gin.HandlerFunc
	ConfirmVehicle      gin.HandlerFunc
	AcceptManualVehicle gin.HandlerFunc
	SelectService       gin.HandlerFunc
	UpdateDraft         gin.HandlerFunc
	SubmitSchedule      gin.HandlerFunc
	Back                gin.HandlerFunc
	Restart             gin.HandlerFunc
	ConfirmBooking      gin.HandlerFunc
	ResumeBooking       gin.HandlerFunc
	ConfirmPayment      gin.HandlerFunc
	PaymentReturn       gin.HandlerFunc
	CancelPayment       gin.HandlerFunc

	// Payment and order endpoints
	PaymentStatus gin.HandlerFunc
	TrackOrder    gin.HandlerFunc
	Dashboard     gin.HandlerFunc
}
