package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lc/folio/internal/audit"
	"github.com/lc/folio/internal/filesys"
	"github.com/lc/folio/internal/view"
)

func (a *app) content() (*view.Content, error) {
	return view.ContentFromCache(a.cache, a.path())
}

func (a *app) topicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Inspect content topics",
	}

	// ---- list command ----
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List content topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.content()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			keys := c.TopicKeys()
			if len(keys) == 0 {
				color.New(color.FgYellow).Fprintln(w, "No topics configured.")
				return nil
			}

			table := newTable(w, "Key", "Name", "Directory", "Tags", "Description")
			table.SetColumnColor(
				tablewriter.Colors{tablewriter.FgGreenColor},
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
				tablewriter.Colors{tablewriter.FgYellowColor},
				tablewriter.Colors{},
				tablewriter.Colors{},
			)
			for _, key := range keys {
				t, _ := c.Topic(key)
				table.Append([]string{key, t.Name, t.Directory, strings.Join(c.Tags(key), ", "), t.Description})
			}
			heading(w, "TOPICS (base "+c.BaseDirPath()+"):")
			table.Render()
			return nil
		},
	}

	// ---- path command ----
	pathCmd := &cobra.Command{
		Use:     "path <key>",
		Short:   "Print a topic's absolute directory",
		Example: "folio topics path blog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.content()
			if err != nil {
				return err
			}
			if err := c.ValidateTopic(args[0]); err != nil {
				return err
			}
			dir, _ := c.TopicAbsolutePath(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	// ---- audit command ----
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Check that every topic directory exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.content()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			results, err := audit.Topics(ctx, c, filesys.OS())
			w := cmd.OutOrStdout()
			table := newTable(w, "Topic", "Directory", "Status")
			for _, r := range results {
				status := color.GreenString("ok")
				if r.Err != nil {
					status = color.RedString("%v", r.Err)
				}
				table.Append([]string{r.Topic, r.Dir, status})
			}
			heading(w, "TOPIC DIRECTORIES:")
			table.Render()
			return err
		},
	}

	cmd.AddCommand(listCmd, pathCmd, auditCmd)
	return cmd
}
