package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	postgresrepo "github.com/avein/ticketd/internal/repository/postgres"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
	"github.com/avein/ticketd/internal/service"
	"github.com/avein/ticketd/internal/service/attendees"
	"github.com/avein/ticketd/internal/service/events"
	"github.com/avein/ticketd/internal/service/orders"
	"github.com/avein/ticketd/internal/service/tickets"
)

// Diagnostics feeds the /test endpoint. Store is nil when the service runs
// without a database connection; the endpoint then reports "Not Connected"
// instead of the process crashing at startup.
type Diagnostics struct {
	Store          *postgresrepo.Store
	DatabaseURLSet bool
	ConnectError   string
}

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	diag *Diagnostics,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, MessageResponse{Message: "Event Ticketing Backend Running"})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/test", handleDiagnostics(diag))

	r.GET("/schema", func(c *gin.Context) {
		c.JSON(http.StatusOK, entitySchemas())
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(requireStore(svcs))
	{
		api.POST("/events", handleCreateEvent(svcs))
		api.GET("/events", handleListEvents(svcs))

		api.POST("/tickets", handleCreateTicketType(svcs))
		api.GET("/tickets", handleListTicketTypes(svcs))

		api.POST("/orders", handlePlaceOrder(svcs, idem))

		api.GET("/attendees", handleListAttendees(svcs))

		api.POST("/checkin/:qr_token", handleCheckin(svcs))
	}

	return r
}

// requireStore turns requests into 503s while the database is not connected;
// the flow is the degraded-mode counterpart of failing naturally mid-request.
func requireStore(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svcs == nil {
			c.AbortWithStatusJSON(
				http.StatusServiceUnavailable,
				ErrorResponse{Error: "database not connected"},
			)
			return
		}
		c.Next()
	}
}

// @Summary  Store connectivity diagnostic
// @Success  200  {object}  map[string]any
// @Router   /test [get]
func handleDiagnostics(diag *Diagnostics) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"backend":           "Running",
			"database":          "Not Available",
			"database_url":      "Not Set",
			"connection_status": "Not Connected",
			"tables":            []string{},
		}

		if diag == nil {
			c.JSON(http.StatusOK, resp)
			return
		}

		if diag.DatabaseURLSet {
			resp["database_url"] = "Set"
		}
		if diag.ConnectError != "" {
			resp["database"] = "Error: " + truncate(diag.ConnectError, 80)
		}
		if diag.Store == nil {
			c.JSON(http.StatusOK, resp)
			return
		}

		resp["database"] = "Available"
		resp["connection_status"] = "Connected"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		tables, err := diag.Store.Tables(ctx, 10)
		if err != nil {
			resp["database"] = "Connected but Error: " + truncate(err.Error(), 80)
		} else {
			resp["database"] = "Connected & Working"
			resp["tables"] = tables
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Create event
// @Param    req body CreateEventRequest true "payload"
// @Success  201 {object} domain.Event
// @Failure  422 {object} ErrorResponse
// @Router   /api/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			unprocessable(c, err.Error())
			return
		}

		e, err := svcs.Events.Create(c.Request.Context(), events.CreateInput{
			Title:       req.Title,
			Description: req.Description,
			Venue:       req.Venue,
			StartAt:     req.StartAt,
			EndAt:       req.EndAt,
			Currency:    req.Currency,
			Status:      req.Status,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, e)
	}
}

// @Summary  List events
// @Success  200 {array} domain.Event
// @Router   /api/events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Events.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=30", true)
	}
}

// @Summary  Create ticket type
// @Param    req body CreateTicketTypeRequest true "payload"
// @Success  201 {object} domain.TicketType
// @Failure  404 {object} ErrorResponse "event not found"
// @Failure  422 {object} ErrorResponse
// @Router   /api/tickets [post]
func handleCreateTicketType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTicketTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			unprocessable(c, err.Error())
			return
		}

		t, err := svcs.Tickets.Create(c.Request.Context(), tickets.CreateInput{
			EventID:       req.EventID,
			Name:          req.Name,
			Price:         req.Price,
			QuantityTotal: req.QuantityTotal,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, t)
	}
}

// @Summary  List ticket types
// @Param    event_id query string false "filter by event"
// @Success  200 {array} domain.TicketType
// @Router   /api/tickets [get]
func handleListTicketTypes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Tickets.List(c.Request.Context(), c.Query("event_id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  Place order (idempotent via Idempotency-Key)
// @Param    req body CreateOrderRequest true "payload"
// @Success  201 {object} orders.PlaceResult
// @Failure  400 {object} ErrorResponse "insufficient inventory"
// @Failure  404 {object} ErrorResponse "ticket type not found"
// @Failure  422 {object} ErrorResponse
// @Router   /api/orders [post]
func handlePlaceOrder(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			unprocessable(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemOrder(req.TicketTypeID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		res, err := svcs.Orders.Place(c.Request.Context(), orders.PlaceInput{
			EventID:      req.EventID,
			TicketTypeID: req.TicketTypeID,
			BuyerName:    req.BuyerName,
			BuyerEmail:   req.BuyerEmail,
			Quantity:     req.Quantity,
		})
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(res)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, res)
	}
}

// @Summary  List attendees
// @Param    event_id query string false "filter by event"
// @Param    order_id query string false "filter by order"
// @Success  200 {array} domain.Attendee
// @Router   /api/attendees [get]
func handleListAttendees(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Attendees.List(
			c.Request.Context(),
			c.Query("event_id"),
			c.Query("order_id"),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Check in an attendee by QR token
// @Param    qr_token path string true "QR token"
// @Success  200 {object} attendees.CheckinResult
// @Failure  404 {object} ErrorResponse "unknown token"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /api/checkin/{qr_token} [post]
func handleCheckin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svcs.Attendees.CheckIn(
			c.Request.Context(),
			c.Param("qr_token"),
			"ip:"+c.ClientIP(),
		)
		if err != nil {
			if errors.Is(err, attendees.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// --- Helpers ---

func unprocessable(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msg})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// tickets service
	case errors.Is(err, tickets.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	// orders service
	case errors.Is(err, orders.ErrTicketTypeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket type not found"})
		return
	case errors.Is(err, orders.ErrInsufficientInventory):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "not enough inventory"})
		return
	// attendees service
	case errors.Is(err, attendees.ErrAttendeeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "attendee not found"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
