package client

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// HealthCmd creates the health command.
func HealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the API server",
		Long:  "Checks that the tutor API is reachable and reports the knowledge base size.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHealth(cmd.OutOrStdout(), NewAPIClientWithCmd(cmd), outputJSON)
		},
	}
}

func runHealth(w io.Writer, api *APIClient, outputJSON bool) error {
	var health HealthResponse
	if err := api.Get("/", &health); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	var stats StatsResponse
	if err := api.Get("/stats", &stats); err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(map[string]interface{}{
			"status":    health.Status,
			"api_url":   api.BaseURL(),
			"chunks":    stats.Chunks,
			"dimension": stats.Dimension,
		}, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "API:       %s (%s)\n", api.BaseURL(), health.Status)
	fmt.Fprintf(w, "Chunks:    %d\n", stats.Chunks)
	if stats.Dimension > 0 {
		fmt.Fprintf(w, "Dimension: %d\n", stats.Dimension)
	}
	return nil
}
