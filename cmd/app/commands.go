package main

import (
	"fmt"
	"strings"

	"CardPulse/internal/di"
	"CardPulse/internal/usecase"
	"CardPulse/pkg/config"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root command.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "cardpulse",
		Short:         "CardPulse - MTG card prices, signals and market narratives",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")

	load := func() (*config.Config, error) {
		cfg, err := config.LoadWithEnv(configPath)
		if err != nil {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(newServeCmd(load))
	root.AddCommand(newCardCmd(load))
	root.AddCommand(newPriceCmd(load))
	root.AddCommand(newAnalyzeCmd(load))
	return root
}

type configLoader func() (*config.Config, error)

// newServeCmd starts the HTTP API, websocket feed and featured refresher.
func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}
}

func cardService(load configLoader) (*usecase.CardService, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	cfg.Metrics.Enabled = false
	return di.InitializeCardService(cfg)
}

func newCardCmd(load configLoader) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "card NAME",
		Short: "Show a card with its price history and signals",
		Example: `  cardpulse card "Black Lotus"
  cardpulse card sol ring --raw`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := cardService(load)
			if err != nil {
				return err
			}
			card, err := cards.FetchCard(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), cardMarkdown(card), raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func newPriceCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "price NAME",
		Short: "Resolve the best available price for a card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := cardService(load)
			if err != nil {
				return err
			}
			res, err := cards.BestPrice(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f USD\t(%s)\n", res.Name, res.Value, res.Source)
			return err
		},
	}
}

func newAnalyzeCmd(load configLoader) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "analyze NAME",
		Short: "Generate the five-line market narrative for a card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := cardService(load)
			if err != nil {
				return err
			}
			card, err := cards.FetchCard(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			n, err := cards.Analyze(cmd.Context(), card.Summary())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), narrativeMarkdown(card, n), raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}
