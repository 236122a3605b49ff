package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦═╗┬┬  ┬┬ ┬┬  ┌─┐┌┬┐
  ╠╦╝│└┐┌┘│ ││  ├┤  │
  ╩╚═┴ └┘ └─┘┴─┘└─┘ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "rivulet",
		Short: "Streaming server-side HTML rendering for Go",
		Long: `Rivulet renders HTML pages on the server and streams them
to the browser in sections, so the first bytes arrive before
the whole page is built.

  • Buffered rendering with escape-on-drain
  • Section flushes over HTTP or WebSocket
  • Static export to S3
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		exportCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Rivulet ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
