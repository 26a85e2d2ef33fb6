package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/parser"
	"github.com/conorfennell/preflopdrill/internal/ranges"
)

// edit runs fn on an editor over the chart's range and saves the result
// when fn succeeds.
func (a *app) edit(chartID string, fn func(e *ranges.Editor) error) (domain.Range, error) {
	_, r, err := a.chart(chartID)
	if err != nil {
		return domain.Range{}, err
	}
	e := ranges.NewEditor(r)
	if err := fn(e); err != nil {
		return domain.Range{}, err
	}
	e.Save(a.ranges)
	return e.Range(), nil
}

func actionByName(e *ranges.Editor, name string) (domain.Action, error) {
	act, ok := e.ActionByName(name)
	if !ok {
		return domain.Action{}, fmt.Errorf("%w: %s", ranges.ErrUnknownAction, name)
	}
	return act, nil
}

// expand turns range notation arguments into hand labels.
func expand(items []string) ([]string, error) {
	var out []string
	for _, item := range items {
		labels, err := parser.Expand(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ranges.ErrInvalidHand, err)
		}
		out = append(out, labels...)
	}
	return out, nil
}

func newRangeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show and edit the range of a chart",
	}

	var asText bool
	show := &cobra.Command{
		Use:   "show <chart-id>",
		Short: "Show a chart's grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := a.chart(args[0])
			if err != nil {
				return err
			}
			if asText {
				fmt.Fprint(cmd.OutOrStdout(), parser.Format(r))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pterm.DefaultSection.Sprint(a.lib.Path(args[0])))
			fmt.Fprint(cmd.OutOrStdout(), renderRange(r))
			return nil
		},
	}
	show.Flags().BoolVar(&asText, "text", false, "print range notation instead of the grid")

	var group string
	var clearFirst bool
	paint := &cobra.Command{
		Use:   "paint <chart-id> <action> [hands...]",
		Short: "Toggle hands with an action; the first hand decides paint or erase",
		Long: "Hands accept range notation such as 22+, A2s+, KTo+, KK-TT or A5s-A2s. " +
			"If the first hand already carries the action every listed hand is erased, otherwise all are painted.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels, err := expand(args[2:])
			if err != nil {
				return err
			}
			r, err := a.edit(args[0], func(e *ranges.Editor) error {
				if clearFirst {
					e.Clear()
				}
				act, err := actionByName(e, args[1])
				if err != nil {
					return err
				}
				if err := e.SelectAction(act.ID); err != nil {
					return err
				}
				if group != "" {
					if err := e.ApplyGroup(group); err != nil {
						return err
					}
				}
				if len(labels) == 0 {
					return nil
				}
				return e.Stroke(labels...)
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRange(r))
			return nil
		},
	}
	paint.Flags().StringVar(&group, "group", "", "also apply a quick-select group, e.g. \"Pocket pairs\"")
	paint.Flags().BoolVar(&clearFirst, "clear", false, "clear the grid first")

	gameType := &cobra.Command{
		Use:   "type <chart-id> classic|shortdeck",
		Short: "Switch the deck of a chart, dropping hands it does not have",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.edit(args[0], func(e *ranges.Editor) error {
				return e.SetGameType(domain.GameType(args[1]))
			})
			return err
		},
	}

	imp := &cobra.Command{
		Use:   "import <chart-id> <file>",
		Short: "Replace a chart's range with a range file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, old, err := a.chart(args[0])
			if err != nil {
				return err
			}
			r, err := parser.ParseFile(args[1])
			if err != nil {
				return err
			}
			r.ID = n.RangeID
			if r.Name == "" {
				r.Name = old.Name
			}
			a.ranges.Save(r)
			fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Imported %d hands into %s", len(r.Hands), a.lib.Path(args[0])))
			return nil
		},
	}

	cmd.AddCommand(show, paint, gameType, imp, newActionCmd(a))
	return cmd
}

func newActionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Edit the action palette of a chart",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <chart-id> <name> <#color>",
			Short: "Add an action",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.edit(args[0], func(e *ranges.Editor) error {
					_, err := e.AddAction(args[1], args[2])
					return err
				})
				return err
			},
		},
		&cobra.Command{
			Use:   "rename <chart-id> <name> <new-name>",
			Short: "Rename an action",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.edit(args[0], func(e *ranges.Editor) error {
					act, err := actionByName(e, args[1])
					if err != nil {
						return err
					}
					return e.RenameAction(act.ID, args[2])
				})
				return err
			},
		},
		&cobra.Command{
			Use:   "recolor <chart-id> <name> <#color>",
			Short: "Change an action's color and repaint its hands",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.edit(args[0], func(e *ranges.Editor) error {
					act, err := actionByName(e, args[1])
					if err != nil {
						return err
					}
					return e.RecolorAction(act.ID, args[2])
				})
				return err
			},
		},
		&cobra.Command{
			Use:   "delete <chart-id> <name>",
			Short: "Delete an action and unpaint its hands",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.edit(args[0], func(e *ranges.Editor) error {
					act, err := actionByName(e, args[1])
					if err != nil {
						return err
					}
					return e.DeleteAction(act.ID)
				})
				return err
			},
		},
	)
	return cmd
}
