// Package keyword derives routing keywords from transcripts without any
// external calls. It is the deterministic fallback for the classifier.
package keyword

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cues.yaml
var cuesYAML []byte

type cueConfig struct {
	Cues []struct {
		Locale   string   `yaml:"locale"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"cues"`
}

// cuePatterns are compiled at init from the embedded table; a bad pattern is
// a programming error and panics at startup.
var cuePatterns = mustLoadCues()

func mustLoadCues() []*regexp.Regexp {
	var cfg cueConfig
	if err := yaml.Unmarshal(cuesYAML, &cfg); err != nil {
		panic(fmt.Sprintf("keyword: parse embedded cues: %v", err))
	}

	var patterns []*regexp.Regexp
	for _, cue := range cfg.Cues {
		for _, p := range cue.Patterns {
			patterns = append(patterns, regexp.MustCompile(`^\s*`+p))
		}
	}
	if len(patterns) == 0 {
		panic("keyword: embedded cue table is empty")
	}
	return patterns
}

// sentenceEnd splits the transcript at the first sentence-terminating mark.
var sentenceEnd = regexp.MustCompile(`[.!?]`)

// Result is the outcome of keyword extraction.
type Result struct {
	Keyword   string
	IsNewIdea bool
}

// Extract derives a routing keyword from a transcript. It normalizes the
// input, tests the new-idea cue patterns in order, and otherwise returns the
// first up-to-three words of the leading clause. Total: it never fails and
// returns an empty keyword only for empty input.
func Extract(transcript string) Result {
	normalized := strings.ToLower(strings.TrimSpace(transcript))
	if normalized == "" {
		return Result{}
	}

	for _, pattern := range cuePatterns {
		if match := pattern.FindString(normalized); match != "" {
			// The matched cue phrase itself becomes the keyword,
			// e.g. "nouvelle idée" or "new idea".
			return Result{
				Keyword:   strings.Join(strings.Fields(match), " "),
				IsNewIdea: true,
			}
		}
	}

	clause := normalized
	if loc := sentenceEnd.FindStringIndex(normalized); loc != nil {
		clause = normalized[:loc[0]]
	}

	words := strings.Fields(clause)
	if len(words) > 3 {
		words = words[:3]
	}

	return Result{Keyword: strings.Join(words, " ")}
}
