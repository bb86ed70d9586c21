package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terroirai/terroir-web/internal/app"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/pkg/logger"
)

var fullDocument bool

var renderCmd = &cobra.Command{
	Use:   "render <path>",
	Short: "Print the synchronized head for one route",
	Args:  cobra.ExactArgs(1),
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

		recorder := metadata.NewRecorder(logger.WithComponent(log, "render"))
		rendered, err := app.NewPrerenderer(
			cfg,
			shell,
			pages.NewStaticPosts(pages.SamplePosts()...),
			nil,
			recorder,
		).Render(args[0])
		if err != nil {
			return err
		}

		if fullDocument {
			fmt.Fprintln(cmd.OutOrStdout(), string(rendered.HTML))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), rendered.HeadHTML)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "fingerprint %s\n", rendered.Fingerprint)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&fullDocument, "full", false, "print the whole document instead of the head")
	renderCmd.Flags().StringVar(&shellFile, "shell", "", "built index.html to render into (defaults to a minimal shell)")
}
