package handlers

import (
	"net/http"

	"quickmechanic/middleware"
	"quickmechanic/models"
	"quickmechanic/services/booking"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking session workflow.
type BookingHandler struct {
	Service     booking.BookingService
	FrontendURL string
	Logger      *zap.Logger
}

// NewBookingHandler creates a BookingHandler. frontendURL is the default
// origin for hosted checkout redirects.
func NewBookingHandler(svc booking.BookingService, frontendURL string, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, FrontendURL: frontendURL, Logger: logger}
}

// sessionResponse renders sess. When err is also set, the error body is
// merged in so the client can keep showing the session it still owns.
func sessionResponse(c *gin.Context, status int, sess *booking.Session, err error) {
	if err == nil {
		c.JSON(status, gin.H{"session": sess.View()})
		return
	}
	wfErr, ok := utils.AsWorkflowError(err)
	if !ok || sess == nil {
		utils.WorkflowJSONError(c, err)
		return
	}
	body := gin.H{
		"session":   sess.View(),
		"error":     wfErr.Message,
		"code":      string(wfErr.Code),
		"retryable": wfErr.Retryable,
	}
	if len(wfErr.Fields) > 0 {
		body["fields"] = wfErr.Fields
	}
	if wfErr.StagingKey != "" {
		body["stagingKey"] = wfErr.StagingKey
	}
	getLogger(c).Info("booking step ended with notice",
		zap.String("sessionID", sess.ID),
		zap.String("code", string(wfErr.Code)),
	)
	c.AbortWithStatusJSON(utils.HTTPStatus(wfErr.Code), body)
}

// StartSession opens a new booking at vehicle confirmation.
func (h *BookingHandler) StartSession(c *gin.Context) {
	sess, err := h.Service.Start(c.Request.Context())
	if err != nil {
		utils.WorkflowJSONError(c, err)
		return
	}
	sessionResponse(c, http.StatusCreated, sess, nil)
}

// GetSession returns the current state of a booking session.
func (h *BookingHandler) GetSession(c *gin.Context) {
	sess, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.WorkflowJSONError(c, err)
		return
	}
	sessionResponse(c, http.StatusOK, sess, nil)
}

// ConfirmVehicle resolves a plate and attaches the vehicle to the session.
func (h *BookingHandler) ConfirmVehicle(c *gin.Context) {
	var input struct {
		Plate string `json:"plate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sess, err := h.Service.ConfirmVehicle(c.Request.Context(), c.Param("sessionID"), input.Plate)
	sessionResponse(c, http.StatusOK, sess, err)
}

// AcceptManualVehicle attaches a vehicle typed in after a lookup miss.
func (h *BookingHandler) AcceptManualVehicle(c *gin.Context) {
	var input struct {
		Vehicle models.Vehicle `json:"vehicle"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sess, err := h.Service.AcceptManualVehicle(c.Request.Context(), c.Param("sessionID"), input.Vehicle)
	sessionResponse(c, http.StatusOK, sess, err)
}

// SelectService picks a catalogue service and moves on to scheduling.
func (h *BookingHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sess, err := h.Service.SelectService(c.Request.Context(), c.Param("sessionID"), input.ServiceID)
	sessionResponse(c, http.StatusOK, sess, err)
}

// UpdateDraft applies a partial edit to the quote form.
func (h *BookingHandler) UpdateDraft(c *gin.Context) {
	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sess, err := h.Service.UpdateDraft(c.Request.Context(), c.Param("sessionID"), patch)
	sessionResponse(c, http.StatusOK, sess, err)
}

// SubmitSchedule moves a complete form to the summary.
func (h *BookingHandler) SubmitSchedule(c *gin.Context) {
	sess, err := h.Service.SubmitSchedule(c.Request.Context(), c.Param("sessionID"))
	sessionResponse(c, http.StatusOK, sess, err)
}

// Back returns to the previous step.
func (h *BookingHandler) Back(c *gin.Context) {
	sess, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	sessionResponse(c, http.StatusOK, sess, err)
}

// Restart discards the booking and starts over from the plate search.
func (h *BookingHandler) Restart(c *gin.Context) {
	sess, err := h.Service.Restart(c.Request.Context(), c.Param("sessionID"))
	sessionResponse(c, http.StatusOK, sess, err)
}

// Confirm submits the summary. Anonymous callers receive a staging key and
// must log in before resuming.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input struct {
		OriginURL string `json:"origin_url"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
	}
	if input.OriginURL == "" {
		input.OriginURL = h.FrontendURL
	}

	var who *booking.Identity
	if userID, userType, ok := middleware.CurrentUser(c); ok {
		who = &booking.Identity{UserID: userID, UserType: userType}
	}

	sess, err := h.Service.Confirm(c.Request.Context(), c.Param("sessionID"), who, input.OriginURL)
	sessionResponse(c, http.StatusOK, sess, err)
}

// Resume rebuilds a staged booking for the now authenticated caller.
func (h *BookingHandler) Resume(c *gin.Context) {
	var input struct {
		StagingKey string `json:"staging_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	userID, userType, ok := middleware.CurrentUser(c)
	if !ok {
		utils.WorkflowJSONError(c, utils.NewAuthenticationRequired(input.StagingKey))
		return
	}
	sess, err := h.Service.ResumeAfterLogin(c.Request.Context(), input.StagingKey, booking.Identity{UserID: userID, UserType: userType})
	if err != nil {
		utils.WorkflowJSONError(c, err)
		return
	}
	sessionResponse(c, http.StatusCreated, sess, nil)
}

// ConfirmPayment records the mock PIX confirmation click and waits for the
// deposit outcome.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	sess, err := h.Service.ConfirmMockPayment(c.Request.Context(), c.Param("sessionID"))
	sessionResponse(c, http.StatusOK, sess, err)
}

// PaymentReturn handles the hosted checkout redirect back to the app.
func (h *BookingHandler) PaymentReturn(c *gin.Context) {
	var input struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sess, err := h.Service.HandlePaymentReturn(c.Request.Context(), c.Param("sessionID"), input.SessionID)
	sessionResponse(c, http.StatusOK, sess, err)
}

// CancelPayment abandons the open deposit and returns to the summary.
func (h *BookingHandler) CancelPayment(c *gin.Context) {
	sess, err := h.Service.CancelPayment(c.Request.Context(), c.Param("sessionID"))
	sessionResponse(c, http.StatusOK, sess, err)
}
