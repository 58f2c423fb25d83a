package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityPubSub fans availability changes out to every API instance so each
// can drop its cached view of the vendor's slots.
type AvailabilityPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewAvailabilityPubSub(rdb *redis.Client) *AvailabilityPubSub {
	return &AvailabilityPubSub{
		rdb:     rdb,
		channel: ChannelAvailabilityChanged(),
	}
}

type availabilityChangedMsg struct {
	Type     string `json:"type"`
	VendorID int64  `json:"vendor_id"`
	SlotID   int64  `json:"slot_id,omitempty"`
	TsUnix   int64  `json:"ts_unix"`
}

func (p *AvailabilityPubSub) PublishChanged(ctx context.Context, vendorID, slotID int64) error {
	msg := availabilityChangedMsg{
		Type:     "availability_changed",
		VendorID: vendorID,
		SlotID:   slotID,
		TsUnix:   time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe blocks, calling handler for every change until ctx is done.
// ready, if non-nil, is closed once the subscription is active.
func (p *AvailabilityPubSub) Subscribe(
	ctx context.Context,
	ready chan<- struct{},
	handler func(ctx context.Context, vendorID int64),
) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev availabilityChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.VendorID != 0 {
				handler(ctx, ev.VendorID)
			}
		}
	}
}
