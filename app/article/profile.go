package article

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	articleFragment = "article"
	shareFragment   = "share_message"
)

//go:embed profiles/pt-BR.yml
var defaultProfileData []byte

func DefaultProfile() (*Profile, error) {
	profile, err := parseProfile(defaultProfileData)
	if err != nil {
		return nil, fmt.Errorf("invalid embedded profile: %w", err)
	}
	return profile, nil
}

func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	profile, err := parseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}

func parseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if profile.DateLayout == "" {
		profile.DateLayout = "02/01/2006"
	}
	if profile.SummaryWords == 0 {
		profile.SummaryWords = 150
	}

	if err := validateProfile(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func validateProfile(profile *Profile) error {
	requiredFields := map[string]string{
		"locale":                      profile.Locale,
		"date layout":                 profile.DateLayout,
		articleFragment + " fragment": profile.Fragments[articleFragment],
		shareFragment + " fragment":   profile.Fragments[shareFragment],
	}

	for fieldName, fieldValue := range requiredFields {
		if strings.TrimSpace(fieldValue) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if profile.SummaryWords <= 0 {
		return fmt.Errorf("summary words must be positive")
	}

	tmpl, err := profile.templates()
	if err != nil {
		return err
	}

	// Dry run so that a reference to a missing fragment fails at load time.
	sample := articleData{
		Title:      "title",
		Author:     "author",
		URL:        "https://www.youtube.com/watch?v=id",
		Transcript: "transcript",
		Summary:    "summary",
		Date:       time.Unix(0, 0).UTC().Format(profile.DateLayout),
		Profile:    profile,
	}
	if err := tmpl.ExecuteTemplate(io.Discard, articleFragment, sample); err != nil {
		return fmt.Errorf("article fragment: %w", err)
	}
	if err := tmpl.ExecuteTemplate(io.Discard, shareFragment, shareData{Title: "title", URL: sample.URL, WordCount: 1}); err != nil {
		return fmt.Errorf("share message fragment: %w", err)
	}

	return nil
}

func (p *Profile) templates() (*template.Template, error) {
	root := template.New(p.Locale).
		Funcs(template.FuncMap{"join": strings.Join}).
		Option("missingkey=error")

	for name, body := range p.Fragments {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse fragment %q: %w", name, err)
		}
	}

	return root, nil
}
