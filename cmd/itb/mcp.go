// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio-based MCP server over the measurement store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/itb/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.
The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "itb": {
        "command": "itb",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  evaluate_itb         Classify pressures without saving
  record_measurement   Validate and store a measurement
  list_measurements    Recent measurements, most recent first
  patient_history      One patient's measurements, oldest first
  export_measurements  json, yaml, markdown, or csv text

AVAILABLE RESOURCES:

  itb://recent     Last 10 measurements
  itb://patients   Patient names
  itb://bands      Classification bands`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, outputLang(), version)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
