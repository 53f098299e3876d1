package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"weave/internal/member"
	"weave/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <weave.toml>",
	Short: "Browse finalized classes interactively",
	Long:  `Open a terminal inspector over every class in a manifest: resolution orders and per-member provider chains`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("ui", "auto", "interactive mode (auto|on|off)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	m, composer, err := loadComposer(args[0])
	if err != nil {
		return err
	}

	views := make([]ui.ClassView, 0)
	g := composer.Graph()
	for _, name := range classTargets(m, composer) {
		art, err := composer.Finalize(name)
		if err != nil {
			// Сломанные классы не попадают в инспектор; их покажет check.
			continue
		}
		view := ui.ClassView{Name: name, Order: art.OrderNames}
		for _, mn := range art.Table.Members() {
			ch, _ := art.Table.Chain(mn)
			providers := make([]string, 0, len(ch))
			for _, p := range ch {
				label := g.Name(p.Unit)
				if p.Kind == member.Abstract {
					label += " (abstract)"
				} else if p.Delegates {
					label += " (delegates)"
				}
				providers = append(providers, label)
			}
			view.Chains = append(view.Chains, ui.MemberChain{Member: mn, Providers: providers})
		}
		views = append(views, view)
	}

	if !shouldUseTUI(mode) {
		return renderInspectPlain(cmd, views)
	}

	program := tea.NewProgram(ui.NewInspectModel(views), tea.WithOutput(os.Stdout))
	_, err = program.Run()
	return err
}

func renderInspectPlain(cmd *cobra.Command, views []ui.ClassView) error {
	out := cmd.OutOrStdout()
	for _, v := range views {
		fmt.Fprintf(out, "%s: %s\n", v.Name, strings.Join(v.Order, " -> "))
		for _, ch := range v.Chains {
			fmt.Fprintf(out, "  %s: %s\n", ch.Member, strings.Join(ch.Providers, " -> "))
		}
	}
	return nil
}
