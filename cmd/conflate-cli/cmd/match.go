package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"geoconflate/lib/conflate"
	"geoconflate/lib/conflate/attrmatch"
	"geoconflate/lib/telemetry"
	"geoconflate/services/conflator"
)

var nameAttrs []string
var keyAttr string
var threshold float64
var maxDistance float64
var jsonOutput bool

func init() {
	matchCmd.Flags().StringSliceVar(&nameAttrs, "name-attrs", []string{"name"}, "attributes compared by string similarity")
	matchCmd.Flags().StringVar(&keyAttr, "key-attr", "name", "attribute identifying features for overrides and output")
	matchCmd.Flags().Float64Var(&threshold, "threshold", attrmatch.DefaultThreshold, "minimum candidate score")
	matchCmd.Flags().Float64Var(&maxDistance, "max-distance", attrmatch.DefaultMaxDistanceMeters, "distance in meters beyond which features never match")
	matchCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the result as json instead of a table")
	rootCmd.AddCommand(matchCmd)
}

type matchRow struct {
	Target    string  `json:"target"`
	Candidate string  `json:"candidate,omitempty"`
	Score     float64 `json:"score,omitempty"`
}

var matchCmd = &cobra.Command{
	Use:   "match <target geojson> <candidate geojson>",
	Short: "Run one-to-one conflation between two geojson files or urls.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}

		client := resty.New()
		telemetry.InstrumentResty(client, "cmd/conflate-cli")

		targets, err := loadCollection(cmd, client, args[0])
		if err != nil {
			log.Fatal(err)
		}
		candidates, err := loadCollection(cmd, client, args[1])
		if err != nil {
			log.Fatal(err)
		}

		service, database, err := openService()
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		result, err := service.Run(cmd.Context(), conflator.RunParams{
			TargetSet:    targetSet,
			CandidateSet: candidateSet,
			KeyAttr:      keyAttr,
			Targets:      targets,
			Candidates:   candidates,
			Finder: attrmatch.New(attrmatch.Options{
				NameAttrs:         nameAttrs,
				Threshold:         threshold,
				MaxDistanceMeters: maxDistance,
			}),
			Monitor: conflate.NewTaskMonitor(cmd.Context()),
		})
		if err != nil {
			log.Fatal(err)
		}

		var rows []matchRow
		for _, target := range result.Features() {
			matches, _ := result.Get(target)
			row := matchRow{Target: target.StringAttribute(keyAttr)}
			if !matches.IsEmpty() {
				row.Candidate = matches.Top().StringAttribute(keyAttr)
				row.Score = matches.TopScore()
			}
			rows = append(rows, row)
		}

		if jsonOutput {
			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(string(out))
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{targetSet, candidateSet, "score"})
		for _, row := range rows {
			if row.Candidate == "" {
				t.AppendRow(table.Row{row.Target, "-", "-"})
				continue
			}
			t.AppendRow(table.Row{row.Target, row.Candidate, fmt.Sprintf("%.3f", row.Score)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
