package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/gridtrain"
	"github.com/conorfennell/preflopdrill/internal/hands"
)

const (
	gridAction = "Select action"
	gridPaint  = "Paint hands"
	gridGroup  = "Apply group"
	gridClear  = "Clear grid"
	gridVerify = "Verify"
	gridReveal = "Toggle reference"
	gridDiff   = "Show diff"
	gridQuit   = "Quit"
)

func newGridCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "grid <chart-id>",
		Short: "Repaint a chart from memory and check it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ref, err := a.chart(args[0])
			if err != nil {
				return err
			}
			return runGrid(cmd.OutOrStdout(), ref)
		},
	}
}

func runGrid(out io.Writer, ref domain.Range) error {
	s := gridtrain.New(ref)
	menu := []string{gridAction, gridPaint, gridGroup, gridClear, gridVerify, gridReveal, gridDiff, gridQuit}

	for {
		fmt.Fprint(out, renderGrid(ref.Type, s.Cell))
		if act, ok := s.Selected(); ok {
			fmt.Fprintln(out, "Painting with "+swatch(act.Color, " "+act.Name+" "))
		}

		choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Grid drill").WithOptions(menu).Show()
		if err != nil {
			return err
		}

		switch choice {
		case gridAction:
			var names []string
			for _, act := range s.Actions() {
				names = append(names, act.Name)
			}
			name, err := pterm.DefaultInteractiveSelect.WithOptions(names).Show()
			if err != nil {
				return err
			}
			if act, ok := s.ActionByName(name); ok {
				err = s.SelectAction(act.ID)
			}
			report(out, err)
		case gridPaint:
			text, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Hands, e.g. 22+, A2s+, KTo").Show()
			if err != nil {
				return err
			}
			labels, err := expand(splitItems(text))
			if err == nil && len(labels) > 0 {
				err = s.Stroke(labels...)
			}
			report(out, err)
		case gridGroup:
			name, err := pterm.DefaultInteractiveSelect.WithOptions(hands.GroupNames()).Show()
			if err != nil {
				return err
			}
			report(out, s.ApplyGroup(name))
		case gridClear:
			s.Clear()
		case gridVerify:
			fmt.Fprint(out, renderResult(s.Verify()))
		case gridReveal:
			s.ToggleReference()
		case gridDiff:
			fmt.Fprint(out, s.TextDiff())
		case gridQuit:
			return nil
		}
	}
}

func splitItems(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' })
}

func report(out io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(out, pterm.Error.Sprint(err))
	}
}

func renderResult(res gridtrain.Result) string {
	data := pterm.TableData{
		{"Correct", fmt.Sprint(res.Correct), strings.Join(res.CorrectCells, " ")},
		{"Incorrect", fmt.Sprint(res.Incorrect), strings.Join(res.IncorrectCells, " ")},
		{"Missed", fmt.Sprint(res.Missed), strings.Join(res.MissedCells, " ")},
	}
	s, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s\nAccuracy: %d%% of %d hands\n", s, res.Accuracy, res.Total)
}
