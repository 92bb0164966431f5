package profile

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency int       `json:"proficiency"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID          uuid.UUID  `json:"id"`
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	DemoURL     string    `json:"demo_url,omitempty"`
	GithubURL   string    `json:"github_url,omitempty"`
	// Technologies is a comma-separated list, kept verbatim from the form.
	Technologies string `json:"technologies,omitempty"`
	Featured     bool   `json:"featured"`
}

type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Date      time.Time `json:"date"`
	Tags      []string  `json:"tags"`
	Published bool      `json:"published"`
}

type Certification struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Issuer string    `json:"issuer"`
	Date   string    `json:"date"`
	Image  string    `json:"image,omitempty"`
	Link   string    `json:"link"`
}

// MaxProjects caps the projects collection per profile.
const MaxProjects = 6

var (
	slugSeparatorRun = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Slugify derives a URL-safe slug from a post title: lowercase, runs of
// non-alphanumerics collapsed to a single hyphen, no leading or trailing
// hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugSeparatorRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
