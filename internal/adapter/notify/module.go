package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/config"
)

// Module exposes the gateway notifier implementation to fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	return NewHTTPClient(p.Config.ChatGatewayAddress, p.Logger)
}
