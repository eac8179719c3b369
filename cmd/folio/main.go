// Command `folio` inspects the configuration of a content repository.
//
// folio reads folio.yaml (or the file named by --config or $FOLIO_CONFIG),
// validates it, and answers questions about its topics, image presets and
// publication metadata.
//
// Usage:
//
//	folio config check [--strict]              - Load and validate the configuration
//	folio config init [--force]                - Write a starter folio.yaml
//	folio config path                          - Show which file would be loaded
//	folio topics list                          - List content topics
//	folio topics path <key>                    - Print a topic's absolute directory
//	folio topics audit                         - Check every topic directory exists
//	folio images list                          - List size presets and formats
//	folio images name <name> <size> <format>   - Expand the naming pattern
//	folio info                                 - Show publication metadata
//
// Examples:
//
//	folio topics path blog
//	folio images name cover thumbnail webp
//	folio --config site/folio.yaml config check --strict
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lc/folio/internal/buildinfo"
	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
	"github.com/lc/folio/internal/log"
)

func main() {
	defer log.Sync()

	root := newRootCmd(cache.Global())
	if err := root.Execute(); err != nil {
		color.New(color.FgHiRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		log.Sync()
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	configFlag string
	cache      *cache.Cache
}

// path resolves the configuration file for this invocation.
func (a *app) path() string {
	return config.Locate(a.configFlag)
}

func newRootCmd(c *cache.Cache) *cobra.Command {
	a := &app{cache: c}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Folio repository configuration tool",
		Long: `Folio reads the YAML configuration of a content repository and answers
questions about its topics, image presets and publication metadata.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configFlag, "config", "c", "",
		fmt.Sprintf("configuration file (default $%s or ./%s)", config.EnvPath, config.DefaultPath))

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", buildinfo.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", buildinfo.Commit)
		},
	}

	root.AddCommand(
		versionCmd,
		a.configCmd(),
		a.topicsCmd(),
		a.imagesCmd(),
		a.infoCmd(),
	)
	return root
}

// newTable returns a borderless table with the CLI's header styling.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	colors := make([]tablewriter.Colors, len(header))
	for i := range colors {
		colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor}
	}
	table.SetHeaderColor(colors...)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	return table
}

func heading(w io.Writer, text string) {
	color.New(color.Bold).Fprintln(w, text)
}

func success(w io.Writer, format string, a ...any) {
	color.New(color.FgGreen, color.Bold).Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", a...)
}
