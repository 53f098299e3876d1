package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"weave/internal/member"
)

var tableCmd = &cobra.Command{
	Use:   "table [flags] <weave.toml> <class>",
	Short: "Dump the dispatch table of a class",
	Long:  `Finalize a class and print each member's provider chain, most specific provider first`,
	Args:  cobra.ExactArgs(2),
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tableEntryPayload struct {
	Unit      string `json:"unit"`
	Kind      string `json:"kind"`
	Delegates bool   `json:"delegates,omitempty"`
}

type tablePayload struct {
	Class  string                         `json:"class"`
	Order  []string                       `json:"order"`
	Chains map[string][]tableEntryPayload `json:"chains"`
}

func runTable(cmd *cobra.Command, args []string) error {
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
	g := composer.Graph()

	out := cmd.OutOrStdout()
	if format == "json" {
		payload := tablePayload{
			Class:  art.Name,
			Order:  art.OrderNames,
			Chains: make(map[string][]tableEntryPayload),
		}
		for _, name := range art.Table.Members() {
			ch, _ := art.Table.Chain(name)
			entries := make([]tableEntryPayload, 0, len(ch))
			for _, p := range ch {
				entries = append(entries, tableEntryPayload{
					Unit:      g.Name(p.Unit),
					Kind:      p.Kind.String(),
					Delegates: p.Delegates,
				})
			}
			payload.Chains[name] = entries
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	classColor := color.New(color.FgCyan, color.Bold)
	abstractColor := color.New(color.Faint)
	fmt.Fprintf(out, "%s: %s\n", classColor.Sprint(art.Name), strings.Join(art.OrderNames, " -> "))
	for _, name := range art.Table.Members() {
		ch, _ := art.Table.Chain(name)
		parts := make([]string, 0, len(ch))
		for _, p := range ch {
			label := g.Name(p.Unit)
			if p.Kind == member.Abstract {
				label = abstractColor.Sprintf("%s (abstract)", label)
			} else if p.Delegates {
				label += " (delegates)"
			}
			parts = append(parts, label)
		}
		fmt.Fprintf(out, "  %s: %s\n", name, strings.Join(parts, " -> "))
	}
	return nil
}
