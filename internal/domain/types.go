package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventArchived  EventStatus = "archived"
)

type OrderStatus string

const (
	OrderPaid     OrderStatus = "paid"
	OrderRefunded OrderStatus = "refunded"
	OrderCanceled OrderStatus = "canceled"
)

type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Venue       string      `json:"venue,omitempty"`
	StartAt     *time.Time  `json:"start_at,omitempty"`
	EndAt       *time.Time  `json:"end_at,omitempty"`
	Currency    string      `json:"currency"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

type TicketType struct {
	ID            string  `json:"id"`
	EventID       string  `json:"event_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	QuantityTotal int     `json:"quantity_total"`
	QuantitySold  int     `json:"quantity_sold"`
}

// Remaining reports how much inventory is left to sell.
func (t *TicketType) Remaining() int {
	return t.QuantityTotal - t.QuantitySold
}

type Order struct {
	ID           string      `json:"id"`
	EventID      string      `json:"event_id"`
	TicketTypeID string      `json:"ticket_type_id"`
	BuyerName    string      `json:"buyer_name"`
	BuyerEmail   string      `json:"buyer_email"`
	Quantity     int         `json:"quantity"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Attendee is one admission issued against an order. QRToken is the sole
// check-in credential; CheckedIn transitions false->true exactly once.
type Attendee struct {
	ID           string     `json:"id"`
	EventID      string     `json:"event_id"`
	OrderID      string     `json:"order_id"`
	TicketTypeID string     `json:"ticket_type_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	QRToken      string     `json:"qr_token"`
	CheckedIn    bool       `json:"checked_in"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
}
