package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheWindow int

// cacheCmd is the parent command for the local series cache
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local series cache",
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm SYMBOL...",
	Short: "Pre-fetch the lookback for symbols into the cache",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		warmed, err := a.WarmCache(cmd.Context(), args, cacheWindow)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "warmed %d of %d symbols\n", warmed, len(args))
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every cached series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Store.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached series\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheWarmCmd, cachePurgeCmd)

	cacheWarmCmd.Flags().IntVarP(&cacheWindow, "window", "w", 0, "Decision window in days (default from config)")
}
