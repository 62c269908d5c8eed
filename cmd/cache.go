package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/advup/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the installation cache",
}

var cacheListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List cached installations",
	RunE:         runCacheList,
	SilenceUsage: true,
}

var cacheClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Remove all cached installations",
	RunE:         runCacheClear,
	SilenceUsage: true,
}

var cacheStatsCmd = &cobra.Command{
	Use:          "stats",
	Short:        "Show cache statistics",
	RunE:         runCacheStats,
	SilenceUsage: true,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}

	return store.Open(dir)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cached installations.")
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("TOOL", "VERSION", "ARCH", "SAVED", "ROOT")

	for _, entry := range entries {
		_ = table.Append(
			entry.Tool,
			entry.Version,
			entry.Architecture,
			entry.SavedAt.Format("2006-01-02 15:04"),
			entry.Root,
		)
	}

	return table.Render()
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")

	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	count, size, err := st.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installations: %d\nTotal size: %.2f MB\n", count, float64(size)/(1024*1024))

	return nil
}
