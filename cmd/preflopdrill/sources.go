package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/gitsource"
	"github.com/conorfennell/preflopdrill/internal/sync"
)

func newSourceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Manage chart-pack sources",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <dir|git-url>",
			Short: "Register a local directory or git repository of .range files",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, typ := args[0], sync.TypeGit
				if !gitsource.IsRemote(path) {
					abs, err := filepath.Abs(path)
					if err != nil {
						return err
					}
					if info, err := os.Stat(abs); err != nil || !info.IsDir() {
						return fmt.Errorf("%s is not a directory", abs)
					}
					path, typ = abs, sync.TypeLocal
				}
				existing, err := a.db.FindSourceByPath(path)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("source already registered with id %d", existing.ID)
				}
				id, err := a.db.InsertSource(path, typ)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Added %s source %d: %s", typ, id, path))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List registered sources",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sources, err := a.db.GetAllSources()
				if err != nil {
					return err
				}
				data := pterm.TableData{{"ID", "Type", "Path", "Last scanned"}}
				for _, s := range sources {
					scanned := "never"
					if s.LastScanned.Valid {
						scanned = s.LastScanned.Time.Local().Format("2006-01-02 15:04")
					}
					data = append(data, []string{strconv.FormatInt(s.ID, 10), s.Type, s.Path, scanned})
				}
				out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Forget a source; charts it imported stay in the library",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid source id %q", args[0])
				}
				return a.db.DeleteSource(id)
			},
		},
	)
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Import every registered source into the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &sync.Syncer{
				DB:       a.db,
				Library:  a.lib,
				Ranges:   a.ranges,
				ReposDir: a.cfg.ReposDir,
				Progress: cmd.ErrOrStderr(),
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			report, err := s.RunSync(ctx)
			if err != nil {
				return err
			}
			for _, e := range report.Errors {
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Warning.Sprint(e))
			}
			fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("%d files: %d charts created, %d updated", report.Files, report.Created, report.Updated))
			return nil
		},
	}
}
