package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"weave/internal/diag"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <weave.toml>",
	Short: "Validate every class in a hierarchy manifest",
	Long:  `Load a manifest, build the unit graph and finalize every class, reporting all composition problems instead of stopping at the first`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	out := cmd.OutOrStdout()

	m, composer, loadErr := loadComposer(args[0])
	if loadErr != nil {
		// Ошибка построения графа фатальна для всего манифеста.
		report(reporter, diag.FromError(args[0], loadErr))
		renderBag(cmd, bag)
		return fmt.Errorf("manifest %s is invalid", args[0])
	}

	targets := classTargets(m, composer)
	finalized := 0
	for _, name := range targets {
		if _, err := composer.Finalize(name); err != nil {
			report(reporter, diag.FromError(name, err))
			continue
		}
		finalized++
	}

	renderBag(cmd, bag)
	if bag.HasErrors() {
		return fmt.Errorf("%d of %d classes failed to finalize", len(targets)-finalized, len(targets))
	}
	if !quiet {
		okColor := color.New(color.FgGreen)
		fmt.Fprintf(out, "%s %d classes finalized\n", okColor.Sprint("ok:"), finalized)
	}
	return nil
}

func report(r diag.Reporter, d diag.Diagnostic) {
	r.Report(d.Code, d.Severity, d.Subject, d.Message, d.Notes)
}

func renderBag(cmd *cobra.Command, bag *diag.Bag) {
	bag.Sort()
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	out := cmd.ErrOrStderr()
	for _, d := range bag.Items() {
		label := d.Severity.String()
		switch d.Severity {
		case diag.SevError:
			label = errColor.Sprint(label)
		case diag.SevWarning:
			label = warnColor.Sprint(label)
		}
		fmt.Fprintf(out, "%s[%s] %s: %s\n", label, d.Code, d.Subject, d.Message)
		for _, n := range d.Notes {
			if n.Subject != "" {
				fmt.Fprintf(out, "  note %s: %s\n", n.Subject, n.Msg)
			} else {
				fmt.Fprintf(out, "  note: %s\n", n.Msg)
			}
		}
	}
}
