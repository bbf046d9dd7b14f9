package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/tutorai/internal/cli"
	"github.com/cloo-solutions/tutorai/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tutord",
		Short: "Tutor API daemon",
		Long:  "Tutor daemon for running the API server and checking its configuration and model providers",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.ConfigCmd())
	rootCmd.AddCommand(admin.CheckCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
