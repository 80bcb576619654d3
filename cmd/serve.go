package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		p, err := newPipeline(cmd, cfg, log)
		if err != nil {
			return err
		}

		srv := server.NewServer(server.RouterConfig{
			PackHandler:   server.NewPackHandler(p.packs, p.pdf, log),
			HealthHandler: server.NewHealthHandler(),
			CORSOrigins:   cfg.Server.CORSOrigins,
			Log:           log,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		grace, _ := cmd.Flags().GetDuration("grace")
		return srv.Run(ctx, cfg.Server.Addr, grace)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides TOHU_ADDR)")
	serveCmd.Flags().Duration("grace", 30*time.Second, "How long to wait for in-flight requests on shutdown")
}
