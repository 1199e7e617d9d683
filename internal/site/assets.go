package site

import "embed"

//go:embed assets/style.css assets/theme.js assets/search.js
var assetFS embed.FS

// writeAssets copies the bundled stylesheet and scripts into the output
// dir. Search assets are only shipped when search is enabled.
func (b *Builder) writeAssets() error {
	names := []string{"style.css", "theme.js"}
	if b.cfg.EnableSearch {
		names = append(names, "search.js")
	}
	for _, name := range names {
		data, err := assetFS.ReadFile("assets/" + name)
		if err != nil {
			return err
		}
		if err := b.writeFile(name, data); err != nil {
			return err
		}
	}
	return nil
}
