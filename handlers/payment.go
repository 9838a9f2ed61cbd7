package handlers

import (
	"context"
	"net/http"

	"quickmechanic/models"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentStatusChecker is satisfied by *payment.Gate.
type PaymentStatusChecker interface {
	Check(ctx context.Context, paymentID string) (models.PaymentStatus, error)
}

type PaymentHandler struct {
	Checker PaymentStatusChecker
}

func NewPaymentHandler(checker PaymentStatusChecker) *PaymentHandler {
	return &PaymentHandler{Checker: checker}
}

// PaymentStatusHandler reads a deposit's status once.
func (h *PaymentHandler) PaymentStatusHandler(c *gin.Context) {
	paymentID := c.Param("paymentSessionID")
	status, err := h.Checker.Check(c.Request.Context(), paymentID)
	if err != nil {
		getLogger(c).Warn("payment status check failed", zap.String("paymentID", paymentID), zap.Error(err))
		utils.WorkflowJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment_status": status})
}
