//go:build wireinject
// +build wireinject

package di

import (
	"CardPulse/internal/usecase"
	"CardPulse/pkg/config"
	"CardPulse/pkg/server"

	"github.com/google/wire"
)

// CardSet provides the card use case and everything below it.
var CardSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,

	// Infrastructure clients
	ProvideCache,
	ProvideScryfall,

	// Repositories
	ProvideCatalog,
	ProvideHistory,
	ProvideFallbackPrices,

	// Services and use cases
	ProvidePriceChain,
	ProvideNarrator,
	ProvideCardService,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		CardSet,
		ProvideFeaturedRefresher,
		ProvideHub,
		ProvideRateLimiter,
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeCardService wires the card use case alone, for one-shot CLI commands.
func InitializeCardService(cfg *config.Config) (*usecase.CardService, error) {
	wire.Build(CardSet)
	return &usecase.CardService{}, nil
}
