// Package enrich supplements a video transcript with bounded web
// context gathered by named search strategies.
package enrich

// Strategy is a named enrichment method. The transcript itself is
// implicit and never a strategy.
type Strategy string

const (
	Background  Strategy = "background"
	Discussions Strategy = "discussions"
	Academic    Strategy = "academic"
	Current     Strategy = "current"
)

// strategyOrder fixes the order strategies run in, regardless of the
// order they appear in a configuration.
var strategyOrder = []Strategy{Background, Discussions, Academic, Current}

// StrategyOrder returns the fixed execution order of all strategies.
func StrategyOrder() []Strategy {
	return append([]Strategy(nil), strategyOrder...)
}

// Config controls which strategies run and how much text each search
// result may contribute. Treat values as immutable once built.
type Config struct {
	Enabled        bool       `json:"enabled"`
	Strategies     []Strategy `json:"strategies"`
	MaxResultChars int        `json:"max_result_chars"`
	TrackSources   bool       `json:"track_sources"`
}

const defaultMaxResultChars = 1000

// NewConfig builds a custom configuration with the default result
// bound and source tracking on.
func NewConfig(enabled bool, strategies ...Strategy) Config {
	return Config{
		Enabled:        enabled,
		Strategies:     strategies,
		MaxResultChars: defaultMaxResultChars,
		TrackSources:   true,
	}
}

// TranscriptOnly disables enrichment entirely.
func TranscriptOnly() Config {
	return NewConfig(false)
}

// PresetMinimal runs only background searches. Fastest.
func PresetMinimal() Config {
	return NewConfig(true, Background)
}

// PresetBalanced runs background and discussion searches. Recommended.
func PresetBalanced() Config {
	return NewConfig(true, Background, Discussions)
}

// PresetComprehensive runs every strategy. Most thorough.
func PresetComprehensive() Config {
	return NewConfig(true, Background, Discussions, Academic, Current)
}

// PresetAcademic focuses on background and research sources.
func PresetAcademic() Config {
	return NewConfig(true, Background, Academic)
}

func (c Config) has(s Strategy) bool {
	for _, configured := range c.Strategies {
		if configured == s {
			return true
		}
	}
	return false
}
