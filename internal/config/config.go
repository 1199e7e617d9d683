package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds every recognized site option.
type Config struct {
	SiteTitle     string   `mapstructure:"site_title"`
	SiteTagline   string   `mapstructure:"site_tagline"`
	SiteURL       string   `mapstructure:"site_url"`
	ContentRoot   string   `mapstructure:"content_root"`
	OutputDir     string   `mapstructure:"output_dir"`
	Order         string   `mapstructure:"order"` // "reverse" or "chronological"
	LatestAsIndex bool     `mapstructure:"latest_as_index"`
	EnableSearch  bool     `mapstructure:"enable_search"`
	IncludeDrafts bool     `mapstructure:"include_drafts"`
	ExtraHead     []string `mapstructure:"extra_head"`
	ExtraFooter   []string `mapstructure:"extra_footer"`
}

// SetDefaults registers the default value of every option on a viper
// instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("site_title", "Journal")
	v.SetDefault("site_tagline", "")
	v.SetDefault("site_url", "")
	v.SetDefault("content_root", "content")
	v.SetDefault("output_dir", "_site")
	v.SetDefault("order", "reverse")
	v.SetDefault("latest_as_index", true)
	v.SetDefault("enable_search", true)
	v.SetDefault("include_drafts", false)
}

// Load unmarshals and validates the configuration. Relative content and
// output paths are resolved against the config file's directory, so a
// build can run from anywhere. extra_head and extra_footer accept either a
// single string or a list.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(stringToListHook())); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if v.ConfigFileUsed() != "" {
		base := filepath.Dir(v.ConfigFileUsed())
		if !filepath.IsAbs(cfg.ContentRoot) {
			cfg.ContentRoot = filepath.Join(base, cfg.ContentRoot)
		}
		if !filepath.IsAbs(cfg.OutputDir) {
			cfg.OutputDir = filepath.Join(base, cfg.OutputDir)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects bad configuration before any parsing begins.
func (c *Config) Validate() error {
	if c.Order != "reverse" && c.Order != "chronological" {
		return fmt.Errorf("order must be %q or %q, got %q", "reverse", "chronological", c.Order)
	}
	info, err := os.Stat(c.ContentRoot)
	if err != nil {
		return fmt.Errorf("content root %s is not readable: %w", c.ContentRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("content root %s is not a directory", c.ContentRoot)
	}
	return nil
}

// stringToListHook lets list-valued options be written as a plain string
// in the config file.
func stringToListHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to == reflect.TypeOf([]string(nil)) && from.Kind() == reflect.String {
			if s := data.(string); s != "" {
				return []string{s}, nil
			}
			return []string{}, nil
		}
		return data, nil
	}
}
