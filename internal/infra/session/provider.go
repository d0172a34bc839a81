package session

import (
	"log/slog"

	"vitrine/config"
	"vitrine/internal/domain/constants"
	"vitrine/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the session provider, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSessionProvider creates a SessionProvider based on configuration.
func NewSessionProvider(params Params) (service.SessionProvider, error) {
	cfg := params.Config.Session
	if cfg == nil || cfg.Provider == "" {
		return nil, errors.New("session provider must be configured")
	}

	switch cfg.Provider {
	case constants.SessionProviderRemote:
		params.Logger.Info("Using remote session provider",
			slog.String("endpoint", cfg.Endpoint),
		)

		return NewRemoteProvider(params.Config)

	case constants.SessionProviderJWT:
		params.Logger.Info("Using JWT session provider")

		return NewJWTProvider(params.Config)

	default:
		return nil, errors.Errorf("unknown session provider: %s", cfg.Provider)
	}
}
