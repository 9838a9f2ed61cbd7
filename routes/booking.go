package routes

import (
	"quickmechanic/handlers"
	"quickmechanic/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking workflow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/booking/resume", middleware.RequireAuth(), hb.ResumeBooking)

	booking := r.Group("/api/booking")
	booking.Use(middleware.OptionalAuth())
	{
		booking.POST("/session", hb.StartSession)

		session := booking.Group("/session/:sessionID")
		session.GET("", hb.GetSession)
		session.POST("/vehicle", hb.ConfirmVehicle)
		session.POST("/vehicle/manual", hb.AcceptManualVehicle)
		session.POST("/service", hb.SelectService)
		session.PATCH("/draft", hb.UpdateDraft)
		session.POST("/schedule", hb.SubmitSchedule)
		session.POST("/back", hb.Back)
		session.POST("/restart", hb.Restart)
		session.POST("/confirm", hb.ConfirmBooking)
		session.POST("/payment/confirm", hb.ConfirmPayment)
		session.POST("/payment/return", hb.PaymentReturn)
		session.POST("/payment/cancel", hb.CancelPayment)
	}
}
