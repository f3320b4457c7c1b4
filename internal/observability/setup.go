package observability

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/dinor-predictions/internal/config"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

type stopFunc func(context.Context) error

func noopStop(context.Context) error { return nil }

type component struct {
	name  string
	start func(config.Config, *logging.Logger) (stopFunc, error)
}

var components = []component{
	{name: "uptrace", start: InitUptrace},
	{name: "pyroscope", start: InitPyroscope},
	{name: "pprof", start: StartPprof},
}

// Setup starts tracing, profiling and pprof in that order. The returned
// shutdown stops them in reverse order and combines their errors.
func Setup(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	started := make([]component, 0, len(components))
	stops := make([]stopFunc, 0, len(components))
	shutdown := func(ctx context.Context) error {
		var out error
		for i := len(stops) - 1; i >= 0; i-- {
			if err := stops[i](ctx); err != nil {
				out = errors.CombineErrors(out, fmt.Errorf("stop %s: %w", started[i].name, err))
			}
		}
		return out
	}

	for _, c := range components {
		stop, err := c.start(cfg, logger)
		if err != nil {
			_ = shutdown(context.Background())
			return nil, fmt.Errorf("init %s: %w", c.name, err)
		}
		started = append(started, c)
		stops = append(stops, stop)
	}

	return shutdown, nil
}
