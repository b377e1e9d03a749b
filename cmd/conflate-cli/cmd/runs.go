package cmd

import (
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Print recorded conflation runs.",
	Run: func(cmd *cobra.Command, args []string) {
		service, database, err := openService()
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		runs, err := service.ListRuns(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"run", "target set", "candidate set", "started", "matched", "unmatched"})
		for _, r := range runs {
			t.AppendRow(table.Row{
				r.ID,
				r.Targetset,
				r.Candidateset,
				time.Unix(r.Startedat, 0).Format(time.DateTime),
				r.Matched,
				r.Unmatched,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
