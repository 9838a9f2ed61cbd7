package tracking

import (
	"context"
	"errors"

	"quickmechanic/models"
	"quickmechanic/services/backend"
	"quickmechanic/utils"

	"go.uber.org/zap"
)

// OrderSource fetches the backend's projection of an order.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// Tracking is an order together with its rendered progress.
type Tracking struct {
	Order        *models.Order `json:"order"`
	CurrentIndex int           `json:"currentIndex"`
	Steps        []Step        `json:"steps"`
}

type Tracker struct {
	source OrderSource
	logger *zap.Logger
}

func NewTracker(source OrderSource, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{source: source, logger: logger}
}

// Track fetches orderID and renders its progress.
func (t *Tracker) Track(ctx context.Context, orderID string) (*Tracking, error) {
	if orderID == "" {
		return nil, utils.NewInvalidFormat("order id is required")
	}
	order, err := t.source.GetOrder(ctx, orderID)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, utils.NewNotFound("order " + orderID + " not found")
	}
	if err != nil {
		t.logger.Warn("order fetch failed", zap.String("orderID", orderID), zap.Error(err))
		return nil, utils.NewNetworkFailure("could not load order", err)
	}
	if CurrentIndex(order.Status) == 0 && order.Status != Milestones[0].Status {
		t.logger.Debug("unmapped order status", zap.String("orderID", orderID), zap.String("status", order.Status))
	}
	return &Tracking{
		Order:        order,
		CurrentIndex: CurrentIndex(order.Status),
		Steps:        Progress(order.Status),
	}, nil
}
