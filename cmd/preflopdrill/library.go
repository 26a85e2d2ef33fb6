package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/library"
)

func newLibraryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the Format / Scenario / Stack / Chart tree",
	}

	cmd.AddCommand(
		newTreeCmd(a),
		&cobra.Command{
			Use:   "add-format <title>",
			Short: "Add a top-level format",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id := a.lib.AddRoot(args[0])
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Added format %s", id))
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <parent-id> <title>",
			Short: "Add the next level below a node",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := a.lib.AddChild(args[0], args[1])
				if err != nil {
					return err
				}
				n, _ := a.lib.FindByID(id)
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Added %s %s", n.Type, id))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <id> <title>",
			Short: "Rename a node",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, ok := a.lib.FindByID(args[0]); !ok {
					return fmt.Errorf("%w: %s", library.ErrNotFound, args[0])
				}
				a.lib.Rename(args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a node and everything below it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, ok := a.lib.FindByID(args[0]); !ok {
					return fmt.Errorf("%w: %s", library.ErrNotFound, args[0])
				}
				a.lib.Delete(args[0])
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Deleted %s", args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "move <id> up|down",
			Short: "Move a node among its siblings",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := library.Up
				switch args[1] {
				case "up":
				case "down":
					dir = library.Down
				default:
					return fmt.Errorf("direction must be up or down, got %q", args[1])
				}
				a.lib.Move(args[0], dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clone <id>",
			Short: "Duplicate a node, its subtree and its ranges",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := a.lib.Clone(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Cloned to %s", id))
				return nil
			},
		},
		&cobra.Command{
			Use:   "paste <source-id> [target-id]",
			Short: "Copy a node under a target; no target pastes a format at the top level",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.lib.Copy(args[0]); err != nil {
					return err
				}
				target := ""
				if len(args) == 2 {
					target = args[1]
				}
				id, err := a.lib.Paste(target)
				if err != nil {
					return err
				}
				clip, _ := a.lib.Clipboard()
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Pasted %q as %s", clip.Title, id))
				return nil
			},
		},
	)
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	var expand []string
	var selected string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the library",
		Long: "Show the library. Everything is expanded unless --expand names the " +
			"nodes to open; their ancestors are opened with them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(expand) == 0 {
				a.lib.ExpandAll()
			} else {
				a.lib.CollapseAll()
				for _, id := range expand {
					if _, ok := a.lib.FindByID(id); !ok {
						return fmt.Errorf("%w: %s", library.ErrNotFound, id)
					}
					for p, ok := a.lib.Parent(id); ok && p != ""; p, ok = a.lib.Parent(p) {
						if !a.lib.IsExpanded(p) {
							a.lib.ToggleExpand(p)
						}
					}
					if !a.lib.IsExpanded(id) {
						a.lib.ToggleExpand(id)
					}
				}
			}
			if selected != "" {
				a.lib.Select(selected)
			}
			s, err := renderTree(a.lib.Roots(), a.lib.IsExpanded, a.lib.Selected())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "node ids to expand")
	cmd.Flags().StringVar(&selected, "select", "", "node id to highlight")
	return cmd
}
