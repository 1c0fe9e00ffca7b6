package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/portfolio-cv/pkg/config"
	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/generator"
	"github.com/nikogura/portfolio-cv/pkg/preview"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listenAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve [content-file-or-url]",
	Short: "Serve freshly rendered CV documents over HTTP",
	Long: `Run the preview server. Documents are rendered on every request from an
in-memory content snapshot that can be edited with PATCH /content.

Routes:
  GET   /health
  GET   /cv/<lang>.<pdf|docx>
  GET   /content
  PATCH /content   {"path": "experiences.0.title.de", "value": "..."}
  GET   /metrics

Example:
  portfolio-cv serve
  portfolio-cv serve content.yaml --listen :9000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default is server.listen from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var contentArg string
	if len(args) > 0 {
		contentArg = args[0]
	}

	var cfg config.Config
	cfg, err = config.Load(getConfigFile(), config.WithContent(contentArg))
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var opts generator.Options
	opts, _, err = generationOptions(cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var site content.SiteContent
	site, err = loadAndLogContent(ctx, cfg.ContentLocation)
	if err != nil {
		return err
	}

	var gen *generator.Generator
	gen, err = generator.New(opts)
	if err != nil {
		return err
	}

	if !getVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := preview.New(gen, site, preview.Options{Name: cfg.Name, Logger: opts.Logger})
	err = server.ListenAndServe(ctx, flagOrConfig(listenAddr, cfg.Server.Listen))
	return err
}
