// Package quote picks motivational one-liners for a progress percentage.
// Decks are authored as markdown files with YAML frontmatter under
// content/quotes; selection is a pure function of (progress, days since
// last update) so the same inputs always produce the same line.
package quote

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
)

// staleDays is the inactivity threshold after which the comeback deck
// takes over from the progress decks.
const staleDays = 7

type deck struct {
	minProgress int
	comeback    bool
	quotes      []string
}

type Service struct {
	md       goldmark.Markdown
	decks    []deck
	comeback *deck
}

func NewService(contentPath string) (*Service, error) {
	s := &Service{
		md: goldmark.New(
			goldmark.WithExtensions(&frontmatter.Extender{}),
		),
	}

	pattern := filepath.Join(contentPath, "quotes", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		d, err := s.loadDeck(file)
		if err != nil {
			return nil, fmt.Errorf("load quote deck %s: %w", filepath.Base(file), err)
		}
		if len(d.quotes) == 0 {
			continue
		}
		if d.comeback {
			c := d
			s.comeback = &c
			continue
		}
		s.decks = append(s.decks, d)
	}

	// Highest qualifying threshold wins, so keep descending.
	sort.Slice(s.decks, func(i, j int) bool {
		return s.decks[i].minProgress > s.decks[j].minProgress
	})
	return s, nil
}

func (s *Service) loadDeck(path string) (deck, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return deck{}, err
	}

	ctx := parser.NewContext()
	var buf bytes.Buffer
	err = s.md.Convert(source, &buf, parser.WithContext(ctx))
	if err != nil {
		return deck{}, err
	}

	var d deck
	fm := frontmatter.Get(ctx)
	if fm != nil {
		var meta struct {
			MinProgress int  `yaml:"min_progress"`
			Comeback    bool `yaml:"comeback"`
		}
		err = fm.Decode(&meta)
		if err != nil {
			return deck{}, err
		}
		d.minProgress = meta.MinProgress
		d.comeback = meta.Comeback
	}

	d.quotes = parseQuotes(source)
	return d, nil
}

// parseQuotes reads the deck body as one quote per markdown list item.
func parseQuotes(source []byte) []string {
	var quotes []string
	for _, line := range strings.Split(string(source), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		q := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if q != "" {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// ForProgress returns the line for a progress percentage, preferring the
// comeback deck when the goal has sat untouched past the stale threshold.
func (s *Service) ForProgress(progressPct, daysSinceUpdate int) string {
	if daysSinceUpdate > staleDays && s.comeback != nil {
		return pick(s.comeback.quotes, progressPct+daysSinceUpdate)
	}

	for _, d := range s.decks {
		if progressPct >= d.minProgress {
			return pick(d.quotes, progressPct)
		}
	}
	return "Keep going."
}

func pick(quotes []string, seed int) string {
	if len(quotes) == 0 {
		return "Keep going."
	}
	return quotes[seed%len(quotes)]
}
