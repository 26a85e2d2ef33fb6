package main

import (
	"fmt"

	"github.com/conorfennell/preflopdrill/internal/config"
	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/library"
	"github.com/conorfennell/preflopdrill/internal/ranges"
	"github.com/conorfennell/preflopdrill/internal/srs"
	"github.com/conorfennell/preflopdrill/internal/storage"
)

// app holds the services shared by every command.
type app struct {
	cfg    config.Config
	db     *storage.DB
	ranges *ranges.Store
	lib    *library.Tree
	srs    *srs.Tracker
}

func (a *app) open(cfg config.Config) error {
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.db = db
	a.ranges = ranges.NewStore(db)
	a.lib = library.New(db, a.ranges, library.WithGameType(domain.GameType(cfg.GameType)))
	a.srs = srs.NewTracker(db)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// chart looks up a chart node and its range. A chart whose range went
// missing gets a fresh default one.
func (a *app) chart(id string) (domain.Node, domain.Range, error) {
	n, ok := a.lib.FindByID(id)
	if !ok {
		return domain.Node{}, domain.Range{}, fmt.Errorf("%w: %s", library.ErrNotFound, id)
	}
	if n.Type != domain.Chart {
		return domain.Node{}, domain.Range{}, fmt.Errorf("%s is a %s, not a chart", id, n.Type)
	}
	r, ok := a.ranges.Get(n.RangeID)
	if !ok {
		r = ranges.NewRange(n.RangeID, n.Title, domain.GameType(a.cfg.GameType))
		a.ranges.Save(r)
	}
	return n, r, nil
}

// context is the library path above a chart, used as drill context.
func (a *app) context(chartID string) string {
	parent, _ := a.lib.Parent(chartID)
	return a.lib.Path(parent)
}
