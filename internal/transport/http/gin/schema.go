package httpgin

import "github.com/gin-gonic/gin"

// entitySchemas describes the persisted shape of each collection for the
// admin schema viewer. Introspection only, nothing validates against it.
func entitySchemas() gin.H {
	return gin.H{
		"event": gin.H{
			"title": "Event",
			"type":  "object",
			"properties": gin.H{
				"title":       gin.H{"type": "string", "description": "Event name"},
				"description": gin.H{"type": "string", "description": "Event description"},
				"venue":       gin.H{"type": "string", "description": "Venue or location"},
				"start_at":    gin.H{"type": "string", "format": "date-time"},
				"end_at":      gin.H{"type": "string", "format": "date-time"},
				"currency":    gin.H{"type": "string", "default": "USD"},
				"status":      gin.H{"type": "string", "enum": []string{"draft", "published", "archived"}, "default": "draft"},
			},
			"required": []string{"title"},
		},
		"tickettype": gin.H{
			"title": "TicketType",
			"type":  "object",
			"properties": gin.H{
				"event_id":       gin.H{"type": "string", "description": "Related event id"},
				"name":           gin.H{"type": "string", "description": "Ticket name (e.g., General Admission)"},
				"price":          gin.H{"type": "number", "minimum": 0, "description": "Unit price"},
				"quantity_total": gin.H{"type": "integer", "minimum": 0, "description": "Total inventory"},
				"quantity_sold":  gin.H{"type": "integer", "minimum": 0, "default": 0, "description": "Sold count"},
			},
			"required": []string{"event_id", "name", "price", "quantity_total"},
		},
		"order": gin.H{
			"title": "Order",
			"type":  "object",
			"properties": gin.H{
				"event_id":       gin.H{"type": "string"},
				"ticket_type_id": gin.H{"type": "string"},
				"buyer_name":     gin.H{"type": "string"},
				"buyer_email":    gin.H{"type": "string"},
				"quantity":       gin.H{"type": "integer", "minimum": 1},
				"total_amount":   gin.H{"type": "number", "minimum": 0},
				"status":         gin.H{"type": "string", "enum": []string{"paid", "refunded", "canceled"}, "default": "paid"},
			},
			"required": []string{"event_id", "ticket_type_id", "buyer_name", "buyer_email", "quantity"},
		},
		"attendee": gin.H{
			"title": "Attendee",
			"type":  "object",
			"properties": gin.H{
				"event_id":       gin.H{"type": "string"},
				"order_id":       gin.H{"type": "string"},
				"ticket_type_id": gin.H{"type": "string"},
				"name":           gin.H{"type": "string"},
				"email":          gin.H{"type": "string"},
				"qr_token":       gin.H{"type": "string", "description": "Unique token encoded in QR for check-in"},
				"checked_in":     gin.H{"type": "boolean", "default": false},
				"checked_in_at":  gin.H{"type": "string", "format": "date-time"},
			},
			"required": []string{"event_id", "order_id", "ticket_type_id", "name", "qr_token"},
		},
	}
}
