package cmd

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"geoconflate/lib/feature"
)

func loadCollection(cmd *cobra.Command, client *resty.Client, source string) (*feature.Collection, error) {
	collection, err := feature.LoadGeoJSON(cmd.Context(), client, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return collection, nil
}
