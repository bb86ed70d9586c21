package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terroirai/terroir-web/internal/app"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/internal/storage"
	"github.com/terroirai/terroir-web/pkg/logger"
	"go.uber.org/zap"
)

var (
	shellFile string
	withPosts bool
)

var prerenderCmd = &cobra.Command{
	Use:   "prerender",
	Short: "Render the static routes to HTML files",
	Long: `prerender renders "/", "/contact" and "/blog" (and every blog post with
--with-posts) through a non-live session and writes each one to
<output-dir>/<route>/index.html. Tracking never runs during prerendering.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := initRuntime()
		if err != nil {
			return err
		}
		defer log.Sync()

		shell, err := readShell(shellFile)
		if err != nil {
			return err
		}

		recorder := metadata.NewRecorder(logger.WithComponent(log, "prerender"))
		sink := storage.NewLocalSink(recorder)
		prerenderer := app.NewPrerenderer(
			cfg,
			shell,
			pages.NewStaticPosts(pages.SamplePosts()...),
			&sink,
			recorder,
		)

		routes, err := prerenderer.Routes(cmd.Context(), withPosts)
		if err != nil {
			return err
		}
		results, err := prerenderer.Write(cfg.OutputDir(), routes)
		for _, result := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", result.RoutePath(), result.Path(), result.ContentHash()[:16])
		}
		if err != nil {
			return err
		}
		log.Info("prerender complete",
			zap.Int("pages", len(results)),
			zap.String("output_dir", cfg.OutputDir()),
		)
		return nil
	},
}

func init() {
	prerenderCmd.Flags().StringVar(&shellFile, "shell", "", "built index.html to render into (defaults to a minimal shell)")
	prerenderCmd.Flags().BoolVar(&withPosts, "with-posts", false, "also prerender every blog post")
}

func readShell(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	shell, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading shell %s: %w", path, err)
	}
	return shell, nil
}
