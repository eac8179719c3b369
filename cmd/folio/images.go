package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lc/folio/internal/view"
)

func (a *app) imagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Inspect image size presets and formats",
	}

	// ---- list command ----
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List size presets and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			im, err := view.ImageFromCache(a.cache, a.path())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			sizes := newTable(w, "Size", "Width", "Height", "Description")
			sizes.SetColumnColor(
				tablewriter.Colors{tablewriter.FgGreenColor},
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
				tablewriter.Colors{},
			)
			for _, key := range im.SizeKeys() {
				s, _ := im.Size(key)
				sizes.Append([]string{key, strconv.Itoa(s.WidthPx), strconv.Itoa(s.HeightPx), s.Description})
			}
			heading(w, "SIZES:")
			sizes.Render()

			formats := newTable(w, "Format", "Description")
			for _, f := range im.Formats() {
				desc, _ := im.FormatDescription(f)
				formats.Append([]string{f, desc})
			}
			fmt.Fprintln(w)
			heading(w, "FORMATS:")
			formats.Render()

			fmt.Fprintf(w, "\nnaming: %s\n", im.NamingPattern())
			return nil
		},
	}

	// ---- name command ----
	nameCmd := &cobra.Command{
		Use:     "name <name> <size> <format>",
		Short:   "Expand the naming pattern for one rendition",
		Example: "folio images name cover thumbnail webp",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := view.ImageFromCache(a.cache, a.path())
			if err != nil {
				return err
			}
			name, err := im.OutputName(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (quality %d)\n", name, im.Quality(args[2], args[1]))
			return nil
		},
	}

	cmd.AddCommand(listCmd, nameCmd)
	return cmd
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show publication metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := view.PublicationFromCache(a.cache, a.path())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "author:    %s\n", p.Author())
			fmt.Fprintf(w, "copyright: %s\n", p.Copyright())
			if site, ok := p.Site(); ok {
				fmt.Fprintf(w, "site:      %s\n", site)
			}
			return nil
		},
	}
}
