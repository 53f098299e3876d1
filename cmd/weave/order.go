package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order [flags] <weave.toml> <class>",
	Short: "Print the resolution order of a class",
	Long:  `Compute and print the linearized resolution order of a class: the class itself first, then every reachable mixin and base, closest mixin winning`,
	Args:  cobra.ExactArgs(2),
	RunE:  runOrder,
}

func init() {
	orderCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type orderPayload struct {
	Class string   `json:"class"`
	Order []string `json:"order"`
}

func runOrder(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	_, composer, err := loadComposer(args[0])
	if err != nil {
		return err
	}
	art, err := composer.Finalize(args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(orderPayload{Class: art.Name, Order: art.OrderNames})
	}

	classColor := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(out, "%s\n", classColor.Sprint(art.Name))
	for i, name := range art.OrderNames {
		fmt.Fprintf(out, "  %2d. %s\n", i, name)
	}
	return nil
}
