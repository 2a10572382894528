package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/registry"

	// Register the LakeSoul factory
	_ "github.com/ajitpratap0/lakesoul-connector/pkg/connector/lakesoul"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "lsconn",
		Short: "Resolve LakeSoul table connector descriptors",
		Long: `lsconn resolves the sink and source descriptors a LakeSoul reader or writer
is built from, given a table definition, statement options and session settings.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lsconn v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available connectors",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Available Connectors:")
			for _, id := range registry.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", id)
			}
		},
	})

	root.AddCommand(newResolveCmd())
	return root
}
