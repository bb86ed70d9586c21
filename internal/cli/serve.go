package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/terroirai/terroir-web/internal/collector"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/pkg/logger"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the development collector and content API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := initRuntime()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.Environment() == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		log.Info("starting collector",
			zap.String("environment", cfg.Environment()),
			zap.String("listen_addr", cfg.ListenAddr()),
			zap.String("cors_origin", cfg.CORSOrigin()),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := collector.NewServer(
			logger.WithComponent(log, "collector"),
			pages.NewStaticPosts(pages.SamplePosts()...),
			cfg.CORSOrigin(),
		)
		return server.Run(ctx, cfg.ListenAddr())
	},
}
