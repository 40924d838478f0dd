package httpgin

import "time"

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type CreateTicketTypeRequest struct {
	EventID       string  `json:"event_id" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"gte=0"`
	QuantityTotal int     `json:"quantity_total" binding:"gte=0"`
}

type CreateOrderRequest struct {
	EventID      string `json:"event_id" binding:"required"`
	TicketTypeID string `json:"ticket_type_id" binding:"required"`
	BuyerName    string `json:"buyer_name" binding:"required"`
	BuyerEmail   string `json:"buyer_email" binding:"required,email"`
	Quantity     int    `json:"quantity" binding:"required,gte=1"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
