package site

import (
	"encoding/json"
	"fmt"
)

const searchIndexFilename = "search_index.json"

// writeSearchIndex serializes the flat search documents consumed by the
// client-side search box.
func (b *Builder) writeSearchIndex() error {
	docs := b.repo.SearchDocuments(b.cfg.SiteURL)
	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal search index: %w", err)
	}
	return b.writeFile(searchIndexFilename, append(out, '\n'))
}
