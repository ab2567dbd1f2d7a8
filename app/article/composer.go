package article

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"text/template"
	"time"
)

type Composer struct {
	profile   *Profile
	templates *template.Template
	clock     Clock
}

func NewComposer(profile *Profile, clock Clock) (*Composer, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is nil")
	}
	if clock == nil {
		clock = time.Now
	}

	tmpl, err := profile.templates()
	if err != nil {
		return nil, err
	}

	return &Composer{
		profile:   profile,
		templates: tmpl,
		clock:     clock,
	}, nil
}

// Run expands the profile's article fragment. The output depends only on
// the input and the clock's date.
func (c *Composer) Run(in Input) (Article, error) {
	data := articleData{
		Title:      in.Title,
		Author:     in.Author,
		URL:        in.URL,
		Transcript: in.Transcript,
		Summary:    Summary(in.Transcript, c.profile.SummaryWords),
		Date:       c.clock().Format(c.profile.DateLayout),
		Profile:    c.profile,
	}

	var sb strings.Builder
	if err := c.templates.ExecuteTemplate(&sb, articleFragment, data); err != nil {
		return Article{}, fmt.Errorf("failed to compose article: %w", err)
	}

	text := sb.String()
	wordCount := WordCount(text)

	slog.Debug("Article composed", "title", in.Title, "length", len(text), "word_count", wordCount)

	return Article{Text: text, WordCount: wordCount}, nil
}

func (c *Composer) ShareMessage(title, url string, wordCount int) (string, error) {
	var sb strings.Builder
	data := shareData{Title: title, URL: url, WordCount: wordCount}
	if err := c.templates.ExecuteTemplate(&sb, shareFragment, data); err != nil {
		return "", fmt.Errorf("failed to render share message: %w", err)
	}
	return sb.String(), nil
}

func (c *Composer) AppliedTechniques() []string {
	return slices.Clone(c.profile.AppliedTechniques)
}

// Summary returns the first n whitespace-delimited tokens joined by single spaces.
func Summary(transcript string, n int) string {
	words := strings.Fields(transcript)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}
