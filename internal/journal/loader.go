package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var yearDirRe = regexp.MustCompile(`^\d{4}$`)

// LoadOptions control how the repository is assembled.
type LoadOptions struct {
	Order         Order
	IncludeDrafts bool
}

// Load walks the content root for four-digit year folders of month files,
// parses and normalizes every entry, and builds the repository. Year
// folders and month files are processed in sorted order so tag labels and
// every derived view come out identical across runs. The first parse or
// validation error aborts the load.
func Load(contentRoot string, renderer BodyRenderer, opts LoadOptions, log *zap.Logger) (*Repository, error) {
	dirs, err := os.ReadDir(contentRoot)
	if err != nil {
		return nil, fmt.Errorf("read content root %s: %w", contentRoot, err)
	}

	var entries []Entry
	for _, dir := range dirs {
		if !dir.IsDir() || !yearDirRe.MatchString(dir.Name()) {
			continue
		}
		year, _ := strconv.Atoi(dir.Name())
		yearPath := filepath.Join(contentRoot, dir.Name())

		files, err := os.ReadDir(yearPath)
		if err != nil {
			return nil, fmt.Errorf("read year folder %s: %w", yearPath, err)
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".md") {
				continue
			}
			path := filepath.Join(yearPath, file.Name())
			src, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read month file %s: %w", path, err)
			}

			raws, err := ParseMonth(path, src)
			if err != nil {
				return nil, err
			}
			log.Debug("parsed month file", zap.String("path", path), zap.Int("entries", len(raws)))

			for _, raw := range raws {
				entry, err := Normalize(raw, year, renderer)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry)
			}
		}
	}

	log.Info("content loaded", zap.Int("entries", len(entries)))
	return NewRepository(entries, opts.Order, opts.IncludeDrafts)
}
