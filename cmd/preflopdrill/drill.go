package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/drill"
	"github.com/conorfennell/preflopdrill/internal/library"
)

const (
	optNext  = "Next"
	optChart = "Show chart"
	optStop  = "Stop"
)

// drillSources collects every chart below id. An empty id drills the demo set.
func (a *app) drillSources(id string) ([]drill.Source, error) {
	if id == "" {
		return nil, nil
	}
	if _, ok := a.lib.FindByID(id); !ok {
		return nil, fmt.Errorf("%w: %s", library.ErrNotFound, id)
	}
	var sources []drill.Source
	for _, c := range a.lib.Charts(id) {
		_, r, err := a.chart(c.ID)
		if err != nil {
			return nil, err
		}
		sources = append(sources, drill.Source{ChartID: c.ID, Range: r, Context: a.context(c.ID)})
	}
	return sources, nil
}

func newDrillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drill [node-id]",
		Short: "Quiz yourself on every chart below a node, due hands first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			sources, err := a.drillSources(id)
			if err != nil {
				return err
			}
			return a.runDrill(cmd.OutOrStdout(), sources)
		},
	}
}

func (a *app) runDrill(out io.Writer, sources []drill.Source) error {
	advanced := make(chan struct{}, 1)
	opts := []drill.Option{
		drill.WithAutoAdvance(a.cfg.Drill.AutoAdvance),
		drill.WithRevealOnMiss(a.cfg.Drill.RevealOnMiss),
		drill.WithOnChange(func() {
			select {
			case advanced <- struct{}{}:
			default:
			}
		}),
	}
	if a.cfg.Drill.Seed != 0 {
		opts = append(opts, drill.WithSeed(a.cfg.Drill.Seed))
	}
	s := drill.New(a.srs, opts...)
	s.Start(sources)

	for s.State() == drill.Running {
		h, _ := s.Current()
		fmt.Fprintln(out, renderScenario(s, h))

		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Your action").
			WithOptions(append(s.Options(), optStop)).
			Show()
		if err != nil {
			return err
		}
		if choice == optStop {
			s.Stop()
			fmt.Fprintln(out, pterm.Info.Sprint("Drill stopped"))
			return nil
		}

		ans, err := s.Submit(choice)
		if err != nil {
			return err
		}
		if ans.Correct {
			fmt.Fprintln(out, pterm.Success.Sprintf("%s: %s", ans.Hand, ans.Expected))
			<-advanced
			continue
		}

		fmt.Fprintln(out, pterm.Error.Sprintf("%s: you chose %s, the chart says %s", ans.Hand, ans.Action, ans.Expected))
		if stop, err := a.afterMiss(out, s); err != nil || stop {
			return err
		}
	}

	if sum, ok := s.Summary(); ok {
		fmt.Fprint(out, renderSummary(sum))
	}
	return nil
}

// afterMiss holds the session on a wrong answer until the user moves on.
func (a *app) afterMiss(out io.Writer, s *drill.Session) (bool, error) {
	for {
		if r, ok := s.Reference(); ok {
			fmt.Fprint(out, renderRange(r))
		}
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Continue").
			WithOptions([]string{optNext, optChart, optStop}).
			Show()
		if err != nil {
			return true, err
		}
		switch choice {
		case optNext:
			return false, s.Next()
		case optChart:
			s.ToggleReference()
		case optStop:
			s.Stop()
			fmt.Fprintln(out, pterm.Info.Sprint("Drill stopped"))
			return true, nil
		}
	}
}

func renderScenario(s *drill.Session, h domain.TrainingHand) string {
	idx, total := s.Position()
	var b strings.Builder
	fmt.Fprintf(&b, "%s   %s\n\n", pterm.Bold.Sprint(h.Hand), h.Combo)
	fmt.Fprintf(&b, "Position:  %s\n", h.Position)
	if h.StackSize != "" {
		fmt.Fprintf(&b, "Stack:     %s\n", h.StackSize)
	}
	fmt.Fprintf(&b, "Situation: %s", h.Situation)
	title := fmt.Sprintf("Hand %d/%d · accuracy %d%%", idx+1, total, s.Accuracy())
	return pterm.DefaultBox.WithTitle(title).Sprint(b.String())
}

func renderSummary(sum drill.Summary) string {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprint("Summary: " + sum.Tier))

	data := pterm.TableData{
		{"Answered", strconv.Itoa(sum.Answered)},
		{"Correct", strconv.Itoa(sum.Score)},
		{"Accuracy", fmt.Sprintf("%d%%", sum.Accuracy)},
		{"Longest streak", strconv.Itoa(sum.LongestStreak)},
	}
	if s, err := pterm.DefaultTable.WithData(data).Srender(); err == nil {
		b.WriteString(s + "\n")
	}

	if len(sum.ProblemHands) > 0 {
		data := pterm.TableData{{"Hand", "Errors"}}
		for _, p := range sum.ProblemHands {
			data = append(data, []string{p.Hand, strconv.Itoa(p.Errors)})
		}
		if s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender(); err == nil {
			b.WriteString("\n" + s + "\n")
		}
	}

	data = pterm.TableData{{"Chosen action", "Attempts", "Correct", "Accuracy"}}
	for _, st := range sum.Actions {
		data = append(data, []string{st.Action, strconv.Itoa(st.Attempts), strconv.Itoa(st.Correct), fmt.Sprintf("%d%%", st.Accuracy)})
	}
	if s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender(); err == nil {
		b.WriteString("\n" + s + "\n")
	}
	return b.String()
}
