package rubrica

import (
	"github.com/tsawler/rubrica/layout"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Pipeline configuration, adjusted by the With methods
	config layout.AnalyzerConfig
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config: layout.DefaultAnalyzerConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy heading word list
	if words := o.config.AssignerConfig.HeadingWords; words != nil {
		newOpts.config.AssignerConfig.HeadingWords = make([]string, len(words))
		copy(newOpts.config.AssignerConfig.HeadingWords, words)
	}

	return newOpts
}
