package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weave/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <weave.toml>",
	Short: "Write finalized-class snapshots to the disk cache",
	Long:  `Finalize every class in a manifest concurrently and persist each one's resolution order and dispatch-table shape, keyed by a digest of its definition closure`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "cache directory (default: the user cache dir)")
	exportCmd.Flags().Int("jobs", 0, "max parallel finalizations (0=auto)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	m, composer, err := loadComposer(args[0])
	if err != nil {
		return err
	}

	var cache *snapshot.Cache
	if outDir != "" {
		cache, err = snapshot.Open(outDir)
	} else {
		cache, err = snapshot.OpenDefault("weave")
	}
	if err != nil {
		return err
	}

	targets := classTargets(m, composer)
	if len(m.Classes) > 0 {
		// FinalizeAll обходит весь граф; для манифеста с явными
		// классами финализируем только их.
		for _, name := range targets {
			if _, err := composer.Finalize(name); err != nil {
				return err
			}
		}
	} else {
		if _, err := composer.FinalizeAll(context.Background(), jobs); err != nil {
			return err
		}
	}

	g := composer.Graph()
	for _, name := range targets {
		art, err := composer.Finalize(name)
		if err != nil {
			return err
		}
		key := snapshot.ClassDigest(g, art.Class)
		if err := cache.Put(key, snapshot.ForArtifacts(g, art)); err != nil {
			return fmt.Errorf("snapshot %s: %w", name, err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%x)\n", name, key[:8])
		}
	}
	return nil
}
