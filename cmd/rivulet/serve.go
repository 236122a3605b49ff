package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/rivulet-dev/rivulet/internal/config"
	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/middleware"
	"github.com/rivulet-dev/rivulet/pkg/render"
	"github.com/rivulet-dev/rivulet/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		pretty  bool
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the page server",
		Long: `Start the HTTP server with the built-in preview pages.

Configuration is read from rivulet.json in the current directory
when it exists; flags override the file.

Examples:
  rivulet serve
  rivulet serve --port=9000
  rivulet serve --host=0.0.0.0 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, pretty, metrics)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from rivulet.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from rivulet.json)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent HTML output")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")

	return cmd
}

func runServe(port int, host string, pretty, metrics bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if pretty {
		cfg.Render.Pretty = true
	}
	if metrics {
		cfg.Server.Metrics = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srvConfig := server.DefaultConfig()
	srvConfig.Address = cfg.Address()
	srvConfig.Pretty = cfg.Render.Pretty
	srvConfig.Indent = cfg.Render.Indent
	srvConfig.EnableMetrics = cfg.Server.Metrics

	s := server.New(srvConfig)
	s.Use(middleware.OpenTelemetry())
	if cfg.Server.Metrics {
		s.Use(middleware.Prometheus())
	}

	for path, page := range sitePages() {
		page := page
		s.RegisterPage(path, func(r *http.Request) (render.PageData, error) {
			return page, nil
		})
	}

	printBanner()
	info("serving on http://" + cfg.Address())
	for _, p := range s.Pages() {
		info("  " + p)
	}

	return s.Run()
}

// loadConfig reads rivulet.json if present and falls back to defaults
// when it is missing.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(".")
	if err != nil {
		if rerr, ok := err.(*errors.RivuletError); ok && rerr.Code == "E060" {
			return config.New(), nil
		}
		return nil, err
	}
	return cfg, nil
}
