package querier

import (
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/codecs"
)

// ClientOptions returns the Temporal client options shared by every binary.
// Workers and clients must agree on the data converter.
func ClientOptions(cfg config.Config, logger *slog.Logger) client.Options {
	if logger == nil {
		logger = slog.Default()
	}
	return client.Options{
		HostPort:      cfg.TemporalAddress,
		Namespace:     cfg.TemporalNamespace,
		Logger:        observability.NewTemporalLogger(logger),
		DataConverter: codecs.DataConverter(),
	}
}

// Dial connects to Temporal with ClientOptions.
func Dial(cfg config.Config, logger *slog.Logger) (client.Client, error) {
	c, err := client.Dial(ClientOptions(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("temporal: dial %s: %w", cfg.TemporalAddress, err)
	}
	return c, nil
}
