package main

import (
	"fmt"

	"mcp-device-spec/internal/devspec"
	"mcp-device-spec/internal/render"

	"github.com/spf13/cobra"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show [field]",
	Short: "Print the resolved device spec, or a single field of it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", string(render.FormatText), "output format: text, json, yaml or card")
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	var field devspec.Field
	if len(args) == 1 {
		if field, err = devspec.ParseField(args[0]); err != nil {
			return err
		}
	}

	spec := newProvider(cmd.Context()).Spec(cmd.Context())

	if field != "" {
		value, _ := spec.Get(field)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	}

	return render.Write(cmd.OutOrStdout(), spec, format)
}
