package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher emits envelopes on the bus. Delivery is best-effort and happens
// after the ledger transaction has committed; a bus failure never rolls back
// state, it is only logged.
type Publisher struct {
	bus    Bus
	logger *slog.Logger
}

func NewPublisher(bus Bus, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{bus: bus, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, channel string, typ Type, payload any) {
	if p == nil || p.bus == nil {
		return
	}
	env := Envelope{
		ID:      uuid.New().String(),
		Type:    typ,
		At:      time.Now().UTC(),
		Payload: payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("event: marshal failed",
			slog.String("type", string(typ)),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := p.bus.Publish(ctx, channel, data); err != nil {
		p.logger.Error("event: publish failed",
			slog.String("channel", channel),
			slog.String("type", string(typ)),
			slog.String("error", err.Error()),
		)
	}
}
