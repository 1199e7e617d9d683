// Package site renders the repository views into the static output tree:
// year pages, tag pages, the tag index, the on-this-day page, the RSS feed,
// the search index, and the bundled assets.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rohitfarmer/journal/internal/config"
	"github.com/rohitfarmer/journal/internal/journal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Builder writes every generated page and asset for one run. The build
// date is fixed at construction so the on-this-day page stays consistent
// even when a build straddles midnight.
type Builder struct {
	cfg  *config.Config
	repo *journal.Repository
	tpl  *template.Template
	now  time.Time
	log  *zap.Logger
}

// New prepares a builder over an already-loaded repository.
func New(cfg *config.Config, repo *journal.Repository, now time.Time, log *zap.Logger) (*Builder, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Builder{cfg: cfg, repo: repo, tpl: tpl, now: now, log: log}, nil
}

// Build produces the whole output tree. The output directory is cleaned
// first so stale pages from earlier runs never survive.
func (b *Builder) Build() error {
	years := b.repo.Years()
	if len(years) == 0 {
		return fmt.Errorf("no entries found under %s", b.cfg.ContentRoot)
	}

	if err := os.RemoveAll(b.cfg.OutputDir); err != nil {
		return fmt.Errorf("clean output dir %s: %w", b.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", b.cfg.OutputDir, err)
	}

	if err := b.writeAssets(); err != nil {
		return err
	}

	for _, year := range years {
		if err := b.writeYearPage(year, false); err != nil {
			return err
		}
	}

	latest, _ := b.repo.LatestYear()
	if b.cfg.LatestAsIndex {
		if err := b.writeYearPage(latest, true); err != nil {
			return err
		}
	}

	if err := b.writeFeed(latest); err != nil {
		return err
	}
	if err := b.writeOnThisDay(); err != nil {
		return err
	}
	if err := b.writeTagPages(); err != nil {
		return err
	}
	if err := b.writeTagIndexPage(); err != nil {
		return err
	}
	if b.cfg.EnableSearch {
		if err := b.writeSearchIndex(); err != nil {
			return err
		}
	}

	b.log.Info("site built", zap.String("output", b.cfg.OutputDir), zap.Ints("years", years))
	return nil
}

func (b *Builder) writeFile(relPath string, data []byte) error {
	path := filepath.Join(b.cfg.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	b.log.Debug("wrote", zap.String("path", path))
	return nil
}
