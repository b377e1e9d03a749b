package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	overrideCmd.AddCommand(overrideAddCmd)
	overrideCmd.AddCommand(overrideDelCmd)
	overrideCmd.AddCommand(overrideListCmd)
	rootCmd.AddCommand(overrideCmd)
}

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage manual link overrides for the current collection pair.",
}

var overrideAddCmd = &cobra.Command{
	Use:   "add <target key> <candidate key>",
	Short: "Assert a link between a target and a candidate feature.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		service, database, err := openService()
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		err = service.AddOverride(cmd.Context(), targetSet, args[0], candidateSet, args[1])
		if err != nil {
			log.Fatal(err)
		}
	},
}

var overrideDelCmd = &cobra.Command{
	Use:   "del <target key>",
	Short: "Drop the override for a target feature.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		service, database, err := openService()
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		err = service.DeleteOverride(cmd.Context(), targetSet, args[0], candidateSet)
		if err != nil {
			log.Fatal(err)
		}
	},
}

var overrideListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the overrides stored for the current collection pair.",
	Run: func(cmd *cobra.Command, args []string) {
		service, database, err := openService()
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		overrides, err := service.ListOverrides(cmd.Context(), targetSet, candidateSet)
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"target", "candidate", "created"})
		for _, o := range overrides {
			t.AppendRow(table.Row{
				o.Targetkey,
				o.Candidatekey,
				time.Unix(o.Createdat, 0).Format(time.DateTime),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
