package narrative

import (
	"context"
	"log/slog"

	"github.com/talgya/stonefall/internal/game"
)

// Source combines the remote generator with the local fallback pool. When the
// remote service is unreachable or misbehaves, the fallback keeps events
// flowing so the game never stalls waiting on the network.
type Source struct {
	client   *Client
	fallback *Fallback
}

// NewSource builds an event source. client may be nil, in which case every
// request is served from the fallback pool.
func NewSource(client *Client, fallback *Fallback) *Source {
	return &Source{client: client, fallback: fallback}
}

// Generate implements game.EventGenerator.
func (s *Source) Generate(ctx context.Context, ec game.EventContext) (*game.GameEvent, error) {
	if s.client != nil && s.client.Enabled() {
		ev, err := s.client.Generate(ctx, ec)
		if err == nil {
			return ev, nil
		}
		slog.Debug("narrative service failed, using fallback", "error", err)
	}
	return s.fallback.Generate(ctx, ec)
}
