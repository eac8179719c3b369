package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
	"github.com/lc/folio/internal/filesys"
	"github.com/lc/folio/internal/log"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(a.configCheckCmd(), a.configInitCmd(), a.configPathCmd())
	return cmd
}

func (a *app) configCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration",
		Long: `Load the configuration, reporting the first parse or validation error.
With --strict, also report cross-reference problems such as duplicate topic
directories, tags for unknown topics and quality entries for undeclared
formats or sizes.`,
		Example: "folio config check --strict",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			path := a.path()

			cfg, err := a.cache.Get(path)
			if err != nil {
				return err
			}

			size := "unknown size"
			if info, err := os.Stat(path); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
			modified := "unknown"
			if e, ok := a.cache.Lookup(path); ok && !e.ModTime.IsZero() {
				modified = humanize.Time(e.ModTime)
			}
			success(w, "%s is valid (%s, modified %s)", cache.CanonicalPath(path), size, modified)
			fmt.Fprintf(w, "  topics: %d  sizes: %d  formats: %d\n",
				len(cfg.Content.Topics), len(cfg.Images.Sizes), len(cfg.Images.Formats))

			if !strict {
				return nil
			}
			findings := multierr.Errors(cfg.Lint())
			if len(findings) == 0 {
				success(w, "no lint findings")
				return nil
			}
			for _, f := range findings {
				color.New(color.FgYellow).Fprint(w, "  ! ")
				fmt.Fprintln(w, f)
			}
			return fmt.Errorf("%d lint %s", len(findings), plural(len(findings), "finding", "findings"))
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "also report cross-reference problems")
	return cmd
}

func (a *app) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a starter configuration file",
		Example: "folio config init --config site/folio.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := filesys.AtomicWrite(filesys.OS(), path, []byte(config.Starter), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info("wrote starter config", "path", path)
			success(cmd.OutOrStdout(), "wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *app) configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show which configuration file would be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cache.CanonicalPath(a.path()))
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
