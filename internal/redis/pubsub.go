package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckinPubSub broadcasts door check-ins so live dashboards can follow
// scans without polling the attendee list.
type CheckinPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewCheckinPubSub(rdb *redis.Client) *CheckinPubSub {
	return &CheckinPubSub{
		rdb:     rdb,
		channel: ChannelCheckins(),
	}
}

type checkinMsg struct {
	Type       string `json:"type"`
	EventID    string `json:"event_id"`
	AttendeeID string `json:"attendee_id"`
	TsUnix     int64  `json:"ts_unix"`
}

func (p *CheckinPubSub) PublishCheckin(ctx context.Context, eventID, attendeeID string) error {
	msg := checkinMsg{
		Type:       "attendee_checked_in",
		EventID:    eventID,
		AttendeeID: attendeeID,
		TsUnix:     time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *CheckinPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, eventID, attendeeID string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg checkinMsg
			if err := json.Unmarshal([]byte(m.Payload), &msg); err == nil &&
				msg.AttendeeID != "" {
				handler(ctx, msg.EventID, msg.AttendeeID)
			}
		}
	}
}
