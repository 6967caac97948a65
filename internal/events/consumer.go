package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/andesviajes/storefront/internal/domain"
	"github.com/andesviajes/storefront/internal/trips"
)

// OrderEvent is the backend's order lifecycle notification. Status uses
// the same loose representations the REST API does; the domain mapping
// normalizes them.
type OrderEvent struct {
	OrderID int64              `json:"order_id"`
	UserID  string             `json:"user_id"`
	Status  domain.OrderStatus `json:"status"`
	Items   []struct {
		ProductID int64 `json:"product_id"`
	} `json:"items"`
}

// Consumer watches order events and deletes the trip customizations of
// completed orders. Checkout itself never cleans them up, so without
// this a stale customization could reattach to a future cart line for
// the same product.
type Consumer struct {
	trips  trips.Store
	reader *kafka.Reader
}

func NewConsumer(tripStore trips.Store, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "order-events",
		GroupID:  "storefront-trip-cleanup",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{trips: tripStore, reader: reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.consumeOne(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		slog.Error("closing order-events reader failed", "error", err)
	}
}

func (c *Consumer) consumeOne(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("reading order event failed", "error", err)
		}
		return
	}
	c.handleMessage(ctx, m)
}

func (c *Consumer) handleMessage(ctx context.Context, m kafka.Message) {
	var event OrderEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		slog.Warn("discarding malformed order event", "error", err)
		return
	}
	if event.UserID == "" {
		slog.Warn("discarding order event without user_id", "order_id", event.OrderID)
		return
	}
	if event.Status != domain.StatusCompleted {
		return
	}

	for _, item := range event.Items {
		if err := c.trips.Delete(ctx, event.UserID, item.ProductID); err != nil {
			slog.Warn("trip cleanup failed",
				"user_id", event.UserID, "product_id", item.ProductID, "error", err)
		}
	}
}
