package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haintran/portfolio-api/pkg/apperror"
)

// Collection describes one nested collection of the Profile aggregate and
// gives the editor generic access to it. The same find/insert/replace/
// delete mechanics apply to every collection; only accessors, validation,
// and normalization differ.
type Collection[T any] struct {
	// Name is the resource name used in events and error messages.
	Name string

	Items    func(*Profile) []T
	SetItems func(*Profile, []T)

	ID     func(T) uuid.UUID
	WithID func(T, uuid.UUID) T

	// Normalize fills derived and defaulted fields before validation.
	Normalize func(p *Profile, item T) T

	// Validate runs resource-specific checks against the whole profile.
	// selfID is uuid.Nil on insert, the element's id on replace, so
	// uniqueness checks can exclude the element itself.
	Validate func(p *Profile, item T, selfID uuid.UUID) error
}

func (c Collection[T]) indexOf(p *Profile, id uuid.UUID) int {
	for i, item := range c.Items(p) {
		if c.ID(item) == id {
			return i
		}
	}
	return -1
}

// List returns the elements in insertion order. Date-descending ordering
// for blog posts and certifications is a presentation concern applied by
// callers, not a storage invariant.
func (c Collection[T]) List(p *Profile) []T {
	items := c.Items(p)
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func (c Collection[T]) Find(p *Profile, id uuid.UUID) (T, error) {
	var zero T
	i := c.indexOf(p, id)
	if i < 0 {
		return zero, apperror.NewNotFound(c.Name, id.String())
	}
	return c.Items(p)[i], nil
}

// Add generates a fresh id, normalizes and validates the element, and
// appends it. Validation failures leave the profile untouched.
func (c Collection[T]) Add(p *Profile, item T) (T, error) {
	var zero T
	item = c.Normalize(p, item)
	if err := c.Validate(p, item, uuid.Nil); err != nil {
		return zero, err
	}
	item = c.WithID(item, uuid.New())
	c.SetItems(p, append(c.Items(p), item))
	return item, nil
}

// Update replaces the element with the given id, preserving the id across
// the patch.
func (c Collection[T]) Update(p *Profile, id uuid.UUID, item T) (T, error) {
	var zero T
	i := c.indexOf(p, id)
	if i < 0 {
		return zero, apperror.NewNotFound(c.Name, id.String())
	}
	item = c.Normalize(p, item)
	if err := c.Validate(p, item, id); err != nil {
		return zero, err
	}
	item = c.WithID(item, id)
	items := c.Items(p)
	items[i] = item
	c.SetItems(p, items)
	return item, nil
}

// Remove deletes the element with the given id and returns the removed
// snapshot so callers can release attached resources.
func (c Collection[T]) Remove(p *Profile, id uuid.UUID) (T, error) {
	var zero T
	i := c.indexOf(p, id)
	if i < 0 {
		return zero, apperror.NewNotFound(c.Name, id.String())
	}
	items := c.Items(p)
	removed := items[i]
	c.SetItems(p, append(items[:i], items[i+1:]...))
	return removed, nil
}

var SkillCollection = Collection[Skill]{
	Name:     "skill",
	Items:    func(p *Profile) []Skill { return p.Skills },
	SetItems: func(p *Profile, items []Skill) { p.Skills = items },
	ID:       func(s Skill) uuid.UUID { return s.ID },
	WithID:   func(s Skill, id uuid.UUID) Skill { s.ID = id; return s },
	Normalize: func(_ *Profile, s Skill) Skill {
		s.Name = strings.TrimSpace(s.Name)
		s.Category = strings.TrimSpace(s.Category)
		return s
	},
	Validate: func(_ *Profile, s Skill, _ uuid.UUID) error {
		if s.Name == "" {
			return apperror.NewInvalidInput("skill name is required", nil)
		}
		if s.Category == "" {
			return apperror.NewInvalidInput("skill category is required", nil)
		}
		if s.Proficiency < 0 || s.Proficiency > 100 {
			return apperror.NewInvalidInput("proficiency must be between 0 and 100", nil)
		}
		return nil
	},
}

var ExperienceCollection = Collection[Experience]{
	Name:     "experience",
	Items:    func(p *Profile) []Experience { return p.Experience },
	SetItems: func(p *Profile, items []Experience) { p.Experience = items },
	ID:       func(e Experience) uuid.UUID { return e.ID },
	WithID:   func(e Experience, id uuid.UUID) Experience { e.ID = id; return e },
	Normalize: func(_ *Profile, e Experience) Experience {
		// An ongoing position has no end date.
		if e.Current {
			e.EndDate = nil
		}
		return e
	},
	Validate: func(_ *Profile, e Experience, _ uuid.UUID) error {
		if strings.TrimSpace(e.Title) == "" {
			return apperror.NewInvalidInput("experience title is required", nil)
		}
		if strings.TrimSpace(e.Company) == "" {
			return apperror.NewInvalidInput("company is required", nil)
		}
		if e.StartDate.IsZero() {
			return apperror.NewInvalidInput("start date is required", nil)
		}
		return nil
	},
}

var EducationCollection = Collection[Education]{
	Name:      "education",
	Items:     func(p *Profile) []Education { return p.Education },
	SetItems:  func(p *Profile, items []Education) { p.Education = items },
	ID:        func(e Education) uuid.UUID { return e.ID },
	WithID:    func(e Education, id uuid.UUID) Education { e.ID = id; return e },
	Normalize: func(_ *Profile, e Education) Education { return e },
	Validate: func(_ *Profile, e Education, _ uuid.UUID) error {
		if strings.TrimSpace(e.School) == "" {
			return apperror.NewInvalidInput("school is required", nil)
		}
		if strings.TrimSpace(e.Degree) == "" {
			return apperror.NewInvalidInput("degree is required", nil)
		}
		if strings.TrimSpace(e.Field) == "" {
			return apperror.NewInvalidInput("field of study is required", nil)
		}
		if e.StartDate.IsZero() {
			return apperror.NewInvalidInput("start date is required", nil)
		}
		return nil
	},
}

var ProjectCollection = Collection[Project]{
	Name:      "project",
	Items:     func(p *Profile) []Project { return p.Projects },
	SetItems:  func(p *Profile, items []Project) { p.Projects = items },
	ID:        func(pr Project) uuid.UUID { return pr.ID },
	WithID:    func(pr Project, id uuid.UUID) Project { pr.ID = id; return pr },
	Normalize: func(_ *Profile, pr Project) Project { return pr },
	Validate: func(p *Profile, pr Project, selfID uuid.UUID) error {
		if strings.TrimSpace(pr.Title) == "" {
			return apperror.NewInvalidInput("project title is required", nil)
		}
		if strings.TrimSpace(pr.Description) == "" {
			return apperror.NewInvalidInput("project description is required", nil)
		}
		if selfID == uuid.Nil && len(p.Projects) >= MaxProjects {
			return apperror.NewLimitExceeded("projects", MaxProjects)
		}
		return nil
	},
}

var BlogPostCollection = Collection[BlogPost]{
	Name:     "post",
	Items:    func(p *Profile) []BlogPost { return p.BlogPosts },
	SetItems: func(p *Profile, items []BlogPost) { p.BlogPosts = items },
	ID:       func(b BlogPost) uuid.UUID { return b.ID },
	WithID:   func(b BlogPost, id uuid.UUID) BlogPost { b.ID = id; return b },
	Normalize: func(_ *Profile, b BlogPost) BlogPost {
		b.Title = strings.TrimSpace(b.Title)
		if b.Slug == "" {
			b.Slug = Slugify(b.Title)
		}
		if b.Date.IsZero() {
			b.Date = time.Now().UTC()
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		return b
	},
	Validate: func(p *Profile, b BlogPost, selfID uuid.UUID) error {
		var missing []string
		if b.Title == "" {
			missing = append(missing, "title")
		}
		if strings.TrimSpace(b.Content) == "" {
			missing = append(missing, "content")
		}
		if strings.TrimSpace(b.Excerpt) == "" {
			missing = append(missing, "excerpt")
		}
		if len(missing) > 0 {
			return apperror.NewInvalidInput(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")), nil)
		}
		if !slugPattern.MatchString(b.Slug) {
			return apperror.NewInvalidInput("slug only allows lowercase letters, numbers, and hyphens", nil)
		}
		for _, other := range p.BlogPosts {
			if other.Slug == b.Slug && other.ID != selfID {
				return apperror.NewConflict("post", "slug", b.Slug)
			}
		}
		return nil
	},
}

var CertificationCollection = Collection[Certification]{
	Name:     "certification",
	Items:    func(p *Profile) []Certification { return p.Certifications },
	SetItems: func(p *Profile, items []Certification) { p.Certifications = items },
	ID:       func(c Certification) uuid.UUID { return c.ID },
	WithID:   func(c Certification, id uuid.UUID) Certification { c.ID = id; return c },
	Normalize: func(_ *Profile, c Certification) Certification {
		if strings.TrimSpace(c.Link) == "" {
			c.Link = "#"
		}
		return c
	},
	Validate: func(_ *Profile, c Certification, _ uuid.UUID) error {
		if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Issuer) == "" || strings.TrimSpace(c.Date) == "" {
			return apperror.NewInvalidInput("title, issuer, and date are required", nil)
		}
		return nil
	},
}
