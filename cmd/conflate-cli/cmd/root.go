package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"geoconflate/lib/sqliteutil"
	"geoconflate/services/conflator"
	"geoconflate/services/conflator/db"
)

var dbPath string
var targetSet string
var candidateSet string

var rootCmd = &cobra.Command{
	Use:   "conflate-cli",
	Short: "conflate-cli matches features between two geojson collections one-to-one.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "conflator.db", "path to the conflator database")
	rootCmd.PersistentFlags().StringVar(&targetSet, "target-set", "target", "name of the target collection")
	rootCmd.PersistentFlags().StringVar(&candidateSet, "candidate-set", "candidate", "name of the candidate collection")
}

func openService() (conflator.Service, *sql.DB, error) {
	database, err := sqliteutil.OpenDB(db.Schema, dbPath)
	if err != nil {
		return conflator.Service{}, nil, err
	}
	return conflator.NewService(database), database, nil
}

// Execute runs the CLI under the given context; cancelling it (for
// instance on SIGINT) cooperatively stops a running match.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
