package article

import "time"

// Clock supplies the publication date for the article footer.
type Clock func() time.Time

type Input struct {
	Transcript string
	Title      string
	URL        string
	Author     string
}

type Article struct {
	Text      string
	WordCount int
}

// Profile holds the boilerplate of one article locale. Fragments are
// text/template bodies referenced by name from the "article" fragment.
type Profile struct {
	Locale            string            `yaml:"locale"`
	DateLayout        string            `yaml:"date_layout"`
	SummaryWords      int               `yaml:"summary_words"`
	Category          string            `yaml:"category"`
	Keywords          []string          `yaml:"keywords"`
	Tags              []string          `yaml:"tags"`
	SEOChecklist      []string          `yaml:"seo_checklist"`
	AppliedTechniques []string          `yaml:"applied_techniques"`
	Fragments         map[string]string `yaml:"fragments"`
}

type articleData struct {
	Title      string
	Author     string
	URL        string
	Transcript string
	Summary    string
	Date       string
	Profile    *Profile
}

type shareData struct {
	Title     string
	URL       string
	WordCount int
}
