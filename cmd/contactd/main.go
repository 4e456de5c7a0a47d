package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/contact/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contactd",
		Short: "Server-driven contact form service",
		Long: `contactd serves a contact form whose state lives on the server.

The browser sends input, blur, submit and reset events over a WebSocket
and receives the re-rendered form after each one. Accepted messages are
delivered to the configured inbox sinks (log, sqlite, s3).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ./contact.{yaml,json,toml})")

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
		configCmd(),
		inboxCmd(),
		versionCmd(),
	)
	return rootCmd
}

// configPath returns the --config flag.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
