package publisher

import (
	"context"

	"dock-allocation-service/internal/ports"

	"github.com/rs/zerolog"
)

// LogPublisher writes allocation events to the context logger. It is used
// when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, evt ports.AllocationEvent) error {
	ev := zerolog.Ctx(ctx).Debug().
		Str("run_id", evt.RunID).
		Str("company", evt.CompanyID).
		Stringer("outcome", evt.Outcome)
	if evt.Window != nil {
		ev = ev.Stringer("window", evt.Window)
	}
	ev.Msg("allocation event")
	return nil
}
