package orders

import "errors"

var (
	ErrTicketTypeNotFound    = errors.New("ticket type not found")
	ErrInsufficientInventory = errors.New("not enough inventory")
)
