package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"weave/internal/dispatch"
	"weave/internal/member"
)

var callCmd = &cobra.Command{
	Use:   "call [flags] <weave.toml> <class> <member>",
	Short: "Invoke a member through the dispatch table",
	Long:  `Instantiate a class and invoke a member with the manifest's trace bodies, showing which providers ran`,
	Args:  cobra.ExactArgs(3),
	RunE:  runCall,
}

func init() {
	callCmd.Flags().Bool("walk", false, "after the call, walk the remaining delegation chain until it ends")
}

func runCall(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	walk, err := cmd.Flags().GetBool("walk")
	if err != nil {
		return fmt.Errorf("failed to get walk flag: %w", err)
	}

	_, composer, err := loadComposer(args[0])
	if err != nil {
		return err
	}
	className, memberName := args[1], args[2]

	inst, err := composer.NewInstance(className)
	if err != nil {
		return err
	}
	result, err := composer.Invoke(inst, memberName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%v\n", result)

	if !walk {
		return nil
	}

	// Пошаговый обход цепочки провайдеров до NoMoreProviders.
	art, err := composer.Finalize(className)
	if err != nil {
		return err
	}
	ch, ok := art.Table.Chain(memberName)
	if !ok {
		return nil
	}
	stepColor := color.New(color.Faint)
	p, found := ch.NextConcrete(-1)
	for found {
		marker := member.Marker{Member: memberName, Pos: p.Pos}
		result, err := composer.InvokeNext(inst, marker, memberName)
		var done *dispatch.NoMoreProvidersError
		if errors.As(err, &done) {
			fmt.Fprintf(out, "%s\n", stepColor.Sprintf("chain ends after %s", composer.Graph().Name(p.Unit)))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %v\n", stepColor.Sprintf("next after %s:", composer.Graph().Name(p.Unit)), result)
		p, found = ch.NextConcrete(p.Pos)
	}
	return nil
}
