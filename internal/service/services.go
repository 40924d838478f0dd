package service

import (
	redisx "github.com/avein/ticketd/internal/redis"
	postgresrepo "github.com/avein/ticketd/internal/repository/postgres"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
	"github.com/avein/ticketd/internal/service/attendees"
	"github.com/avein/ticketd/internal/service/events"
	"github.com/avein/ticketd/internal/service/orders"
	"github.com/avein/ticketd/internal/service/tickets"
)

type Services struct {
	Events    *events.Service
	Tickets   *tickets.Service
	Orders    *orders.Service
	Attendees *attendees.Service
}

type Config struct {
	Events  events.Config
	Tickets tickets.Config
}

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.CheckinPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Events:    events.New(store.Events(), cache, cfg.Events),
		Tickets:   tickets.New(store.TicketTypes(), store.Events(), cache, cfg.Tickets),
		Orders:    orders.New(store.Orders(), store.TicketTypes(), cache),
		Attendees: attendees.New(store.Attendees(), pubsub, limiter),
	}
}
