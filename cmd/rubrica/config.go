package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/rubrica/layout"
)

// Config holds every pipeline tunable plus the command-level knobs.
// Zero values mean "use the built-in default".
type Config struct {
	Cluster  ClusterConfig `yaml:"cluster"`
	Margins  MarginConfig  `yaml:"margins"`
	Title    TitleConfig   `yaml:"title"`
	Headings HeadingConfig `yaml:"headings"`
	Page     PageConfig    `yaml:"page"`

	// Jobs is the batch worker count; 0 means one per CPU.
	Jobs int `yaml:"jobs"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// ClusterConfig controls font size clustering.
type ClusterConfig struct {
	Tolerance float64 `yaml:"tolerance"`
}

// MarginConfig controls header and footer detection.
type MarginConfig struct {
	HeaderHeight     float64 `yaml:"header_height"`
	FooterHeight     float64 `yaml:"footer_height"`
	OccurrenceRatio  float64 `yaml:"occurrence_ratio"`
	BoilerplateRatio float64 `yaml:"boilerplate_ratio"`
	BoilerplateMax   int     `yaml:"boilerplate_max_length"`
	MinPages         int     `yaml:"min_pages"`
}

// TitleConfig controls title detection on the first page.
type TitleConfig struct {
	Epsilon   float64 `yaml:"epsilon"`
	TopCutoff float64 `yaml:"top_cutoff"`
	MaxLines  int     `yaml:"max_lines"`
}

// HeadingConfig controls heading assignment and the emission gates.
type HeadingConfig struct {
	MatchTolerance float64 `yaml:"match_tolerance"`
	MinLength      int     `yaml:"min_length"`
	MaxLength      int     `yaml:"max_length"`
	MaxWords       int     `yaml:"max_words"`
	Guard          string  `yaml:"guard"`
	ExtraClusters  string  `yaml:"extra_clusters"`
	PageNumbering  string  `yaml:"page_numbering"`
}

// PageConfig supplies fallback page geometry for dumps whose pages carry
// no dimensions.
type PageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (c *Config) defaults() {
	base := layout.DefaultAnalyzerConfig()

	if c.Cluster.Tolerance <= 0 {
		c.Cluster.Tolerance = base.ClusterConfig.Tolerance
	}
	if c.Margins.HeaderHeight <= 0 {
		c.Margins.HeaderHeight = base.HeaderFooterConfig.HeaderRegionHeight
	}
	if c.Margins.FooterHeight <= 0 {
		c.Margins.FooterHeight = base.HeaderFooterConfig.FooterRegionHeight
	}
	if c.Margins.OccurrenceRatio <= 0 {
		c.Margins.OccurrenceRatio = base.HeaderFooterConfig.MinOccurrenceRatio
	}
	if c.Margins.BoilerplateRatio <= 0 {
		c.Margins.BoilerplateRatio = base.HeaderFooterConfig.BoilerplateOccurrenceRatio
	}
	if c.Margins.BoilerplateMax <= 0 {
		c.Margins.BoilerplateMax = base.HeaderFooterConfig.BoilerplateMaxLength
	}
	if c.Margins.MinPages <= 0 {
		c.Margins.MinPages = base.HeaderFooterConfig.MinPages
	}
	if c.Title.Epsilon <= 0 {
		c.Title.Epsilon = base.TitleConfig.Epsilon
	}
	if c.Title.TopCutoff <= 0 {
		c.Title.TopCutoff = base.TitleConfig.TopRegionCutoff
	}
	if c.Title.MaxLines <= 0 {
		c.Title.MaxLines = base.TitleConfig.MaxLines
	}
	if c.Headings.MatchTolerance <= 0 {
		c.Headings.MatchTolerance = base.AssignerConfig.ClusterMatchTolerance
	}
	if c.Headings.MinLength <= 0 {
		c.Headings.MinLength = base.AssignerConfig.MinHeadingLength
	}
	if c.Headings.MaxLength <= 0 {
		c.Headings.MaxLength = base.AssignerConfig.MaxHeadingLength
	}
	if c.Headings.MaxWords <= 0 {
		c.Headings.MaxWords = base.AssignerConfig.MaxWords
	}
	if c.Headings.Guard == "" {
		c.Headings.Guard = base.AssignerConfig.Guard.String()
	}
	if c.Headings.ExtraClusters == "" {
		c.Headings.ExtraClusters = base.AssignerConfig.ExtraClusters.String()
	}
	if c.Headings.PageNumbering == "" {
		c.Headings.PageNumbering = base.AssignerConfig.Pages.String()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// analyzerConfig maps the file config onto the pipeline configuration.
// Call defaults first; unset policy strings fail the parse otherwise.
func (c *Config) analyzerConfig() (layout.AnalyzerConfig, error) {
	cfg := layout.DefaultAnalyzerConfig()

	cfg.ClusterConfig.Tolerance = c.Cluster.Tolerance
	cfg.HeaderFooterConfig.HeaderRegionHeight = c.Margins.HeaderHeight
	cfg.HeaderFooterConfig.FooterRegionHeight = c.Margins.FooterHeight
	cfg.HeaderFooterConfig.MinOccurrenceRatio = c.Margins.OccurrenceRatio
	cfg.HeaderFooterConfig.BoilerplateOccurrenceRatio = c.Margins.BoilerplateRatio
	cfg.HeaderFooterConfig.BoilerplateMaxLength = c.Margins.BoilerplateMax
	cfg.HeaderFooterConfig.MinPages = c.Margins.MinPages
	cfg.TitleConfig.Epsilon = c.Title.Epsilon
	cfg.TitleConfig.TopRegionCutoff = c.Title.TopCutoff
	cfg.TitleConfig.MaxLines = c.Title.MaxLines
	cfg.AssignerConfig.ClusterMatchTolerance = c.Headings.MatchTolerance
	cfg.AssignerConfig.MinHeadingLength = c.Headings.MinLength
	cfg.AssignerConfig.MaxHeadingLength = c.Headings.MaxLength
	cfg.AssignerConfig.MaxWords = c.Headings.MaxWords
	cfg.PageWidth = c.Page.Width
	cfg.PageHeight = c.Page.Height

	guard, err := parseGuardPolicy(c.Headings.Guard)
	if err != nil {
		return cfg, err
	}
	cfg.AssignerConfig.Guard = guard

	extra, err := parseExtraClusterPolicy(c.Headings.ExtraClusters)
	if err != nil {
		return cfg, err
	}
	cfg.AssignerConfig.ExtraClusters = extra

	pages, err := parsePageNumbering(c.Headings.PageNumbering)
	if err != nil {
		return cfg, err
	}
	cfg.AssignerConfig.Pages = pages

	return cfg, nil
}

// loadConfigFile reads a YAML config file.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig loads the config file when a path is given, then backfills
// defaults. An empty path yields the built-in defaults.
func resolveConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.defaults()
	return cfg, nil
}

func parseGuardPolicy(s string) (layout.GuardPolicy, error) {
	switch s {
	case "strict":
		return layout.GuardStrict, nil
	case "permissive":
		return layout.GuardPermissive, nil
	}
	return 0, fmt.Errorf("unknown guard policy %q", s)
}

func parseExtraClusterPolicy(s string) (layout.ExtraClusterPolicy, error) {
	switch s {
	case "drop":
		return layout.ExtraClustersDrop, nil
	case "collapse":
		return layout.ExtraClustersCollapse, nil
	}
	return 0, fmt.Errorf("unknown extra-cluster policy %q", s)
}

func parsePageNumbering(s string) (layout.PageNumbering, error) {
	switch s {
	case "physical":
		return layout.PagePhysical, nil
	case "logical":
		return layout.PageLogical, nil
	}
	return 0, fmt.Errorf("unknown page numbering %q", s)
}
