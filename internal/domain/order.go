package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the single canonical representation of an order's
// lifecycle state. The backend has historically emitted statuses as
// numbers or free-form strings; that mapping happens exactly once, in
// UnmarshalJSON, and nowhere else.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseOrderStatus maps the backend's loose status forms (0..3, "pending",
// "COMPLETED", "en proceso", ...) onto the closed set.
func ParseOrderStatus(v any) (OrderStatus, error) {
	switch t := v.(type) {
	case float64:
		return statusFromNumber(int(t))
	case int:
		return statusFromNumber(t)
	case string:
		return statusFromString(t)
	default:
		return "", fmt.Errorf("unsupported order status representation %T", v)
	}
}

func statusFromNumber(n int) (OrderStatus, error) {
	switch n {
	case 0:
		return StatusPending, nil
	case 1:
		return StatusProcessing, nil
	case 2:
		return StatusCompleted, nil
	case 3:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown numeric order status %d", n)
}

func statusFromString(s string) (OrderStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING", "PENDIENTE":
		return StatusPending, nil
	case "PROCESSING", "EN PROCESO", "IN_PROGRESS":
		return StatusProcessing, nil
	case "COMPLETED", "COMPLETADA", "DONE":
		return StatusCompleted, nil
	case "CANCELLED", "CANCELED", "CANCELADA":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseOrderStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OrderItem is one line of an order submission: the cart line plus the
// trip customization fields when the customer configured one. The trip
// fields are omitted entirely when absent, not defaulted.
type OrderItem struct {
	ProductID   int64  `json:"productId"`
	Quantity    int    `json:"quantity"`
	FechaIda    string `json:"fechaIda,omitempty"`
	FechaVuelta string `json:"fechaVuelta,omitempty"`
	HoraIda     string `json:"horaIda,omitempty"`
	HoraVuelta  string `json:"horaVuelta,omitempty"`
}

type Order struct {
	ID        int64           `json:"id"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}
