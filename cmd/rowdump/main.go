// cmd/rowdump/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	app "sqlrow/internal"
	"sqlrow/internal/dump"
)

var (
	outputFormat string
	rowLimit     int
)

var rootCmd = &cobra.Command{
	Use:   "rowdump",
	Short: "Print query results through typed row access",
	Long: `rowdump runs read-only SQL against PostgreSQL or MySQL and prints the rows.

Connection settings come from the environment (DB_DRIVER, DB_HOST, DB_PORT,
DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE). LOG_LEVEL controls logging on stderr.`,
	SilenceUsage: true,
}

var queryCmd = &cobra.Command{
	Use:   "query [SQL|-]",
	Short: "Run a query and print its rows",
	Long: `Run a query and print its rows as an aligned table or as JSON lines.

Examples:
  rowdump query "SELECT id, email FROM accounts"
  rowdump query --format json --limit 10 "SELECT * FROM events"
  echo "SELECT now()" | rowdump query -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := dump.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		query, err := readQuery(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		application := app.NewApplication()
		if err := application.Initialize(ctx); err != nil {
			return err
		}
		defer application.Shutdown(ctx)

		n, err := application.RunQuery(ctx, cmd.OutOrStdout(), query, format, rowLimit)
		if err != nil {
			application.Logger.Error("Query failed", "error", err)
			return err
		}
		application.Logger.Info("Query completed", "rows", n)
		return nil
	},
}

func readQuery(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func init() {
	queryCmd.Flags().StringVarP(&outputFormat, "format", "f", string(dump.FormatTable), "Output format: table or json")
	queryCmd.Flags().IntVarP(&rowLimit, "limit", "n", 0, "Stop after this many rows (0 prints all)")
	rootCmd.AddCommand(queryCmd)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
