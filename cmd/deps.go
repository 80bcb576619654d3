package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tohu/internal/config"
	"github.com/abhisek/tohu/internal/imagegen"
	"github.com/abhisek/tohu/internal/llm"
	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/pack"
	"github.com/abhisek/tohu/internal/pdf"
)

// loadConfig resolves the config path from --config, then TOHU_CONFIG.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("TOHU_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// pipeline is everything needed to build and print a pack.
type pipeline struct {
	packs *pack.Service
	pdf   *pdf.Renderer
}

// newPipeline wires providers, clients and the orchestrator from cfg.
func newPipeline(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (*pipeline, error) {
	ctx := cmd.Context()

	provider, err := llm.NewProvider(ctx, cfg.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("text provider: %w", err)
	}

	gen, err := imagegen.NewGenerator(ctx, cfg.Images)
	if err != nil {
		return nil, fmt.Errorf("image provider: %w", err)
	}
	images := imagegen.NewClient(gen, imagegen.Options{
		RPS:               cfg.Images.RPS,
		PlaceholderFormat: cfg.Images.PlaceholderFormat,
		Timeout:           cfg.Timeout,
		Log:               log,
	})

	log.Info("pipeline ready",
		"text_provider", cfg.LLM.Provider,
		"text_model", provider.ModelID(),
		"image_model", images.ModelID(),
		"timeout", cfg.Timeout.String(),
	)

	return &pipeline{
		packs: pack.NewService(pack.NewTextClient(provider, cfg.Timeout, log), images, log),
		pdf:   pdf.NewRenderer(log),
	}, nil
}
