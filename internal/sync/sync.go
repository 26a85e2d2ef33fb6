// Package sync imports chart packs into the library. A pack is a directory
// tree laid out as Format/Scenario/Stack/Chart.range.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/gitsource"
	"github.com/conorfennell/preflopdrill/internal/library"
	"github.com/conorfennell/preflopdrill/internal/parser"
	"github.com/conorfennell/preflopdrill/internal/ranges"
	"github.com/conorfennell/preflopdrill/internal/storage"
)

// RangeExt is the extension of chart files in a pack.
const RangeExt = ".range"

// Source types stored in the sources table.
const (
	TypeLocal = "local"
	TypeGit   = "git"
)

// Report summarizes one sync run.
type Report struct {
	Files   int
	Created int
	Updated int
	Errors  []error
}

// Syncer reconciles stored sources with the library.
type Syncer struct {
	DB       *storage.DB
	Library  *library.Tree
	Ranges   *ranges.Store
	ReposDir string
	// Progress receives git clone/pull output. May be nil.
	Progress io.Writer
}

// RunSync iterates over all sources and reconciles them.
func (s *Syncer) RunSync(ctx context.Context) (Report, error) {
	var report Report
	slog.Info("Starting sync process for all sources...")
	sources, err := s.DB.GetAllSources()
	if err != nil {
		return report, fmt.Errorf("failed to get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No sources configured. Add one with: source add <path/or/url.git>")
		return report, nil
	}

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		slog.Info("Syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		root := source.Path
		if source.Type == TypeGit {
			if err := os.MkdirAll(s.ReposDir, os.ModePerm); err != nil {
				return report, fmt.Errorf("failed to create repos directory: %w", err)
			}
			localRepoPath, err := gitsource.LocalPath(s.ReposDir, source.Path)
			if err != nil {
				report.Errors = append(report.Errors, err)
				slog.Error("Error determining local path for git repo", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(ctx, source.Path, localRepoPath, s.Progress); err != nil {
				report.Errors = append(report.Errors, err)
				slog.Error("Error syncing git repo", "url", source.Path, "error", err)
				continue
			}
			root = localRepoPath
		}

		s.reconcile(root, &report)
		if err := s.DB.UpdateSourceLastScanned(source.ID); err != nil {
			slog.Warn("Failed to update last scanned for source", "source_id", source.ID, "error", err)
		}
	}
	slog.Info("Sync process complete.",
		"files", report.Files,
		"created", report.Created,
		"updated", report.Updated,
		"errors", len(report.Errors),
	)
	return report, nil
}

// Import reconciles a single pack directory without touching the sources
// table.
func (s *Syncer) Import(root string) Report {
	var report Report
	s.reconcile(root, &report)
	return report
}

func (s *Syncer) reconcile(root string, report *Report) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), RangeExt) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		report.Files++
		if err := s.importFile(path, rel, report); err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("importing %s: %w", rel, err))
		}
		return nil
	})
	if walkErr != nil {
		report.Errors = append(report.Errors, walkErr)
		slog.Error("Error walking directory", "path", root, "error", walkErr)
	}
}

var errLayout = errors.New("expected Format/Scenario/Stack/Chart" + RangeExt)

func (s *Syncer) importFile(path, rel string, report *Report) error {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 4 {
		return errLayout
	}
	parts[3] = parts[3][:len(parts[3])-len(RangeExt)]

	parsed, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	chartID, created, err := s.ensurePath(parts)
	if err != nil {
		return err
	}
	chart, _ := s.Library.FindByID(chartID)

	r := parsed
	r.ID = chart.RangeID
	if r.Name == "" {
		r.Name = chart.Title
	}
	// Keep action ids stable across runs so selections survive a re-sync.
	if old, ok := s.Ranges.Get(chart.RangeID); ok {
		for i, a := range r.Actions {
			if prev, ok := old.ActionByColor(a.Color); ok {
				r.Actions[i].ID = prev.ID
			}
		}
	}
	s.Ranges.Save(r)

	if created {
		report.Created++
		slog.Info("New chart imported", "path", rel, "hands", len(r.Hands))
	} else {
		report.Updated++
		slog.Debug("Chart updated", "path", rel, "hands", len(r.Hands))
	}
	return nil
}

// ensurePath finds or creates the nodes named by titles and returns the
// chart id and whether the chart is new.
func (s *Syncer) ensurePath(titles []string) (string, bool, error) {
	parent := ""
	created := false
	for _, title := range titles {
		if id, ok := s.Library.FindChild(parent, title); ok {
			parent = id
			continue
		}
		created = true
		if parent == "" {
			parent = s.Library.AddRoot(title)
			continue
		}
		id, err := s.Library.AddChild(parent, title)
		if err != nil {
			return "", false, err
		}
		parent = id
	}
	if n, _ := s.Library.FindByID(parent); n.Type != domain.Chart {
		return "", false, errLayout
	}
	return parent, created, nil
}
