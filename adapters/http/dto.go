package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/haintran/portfolio-api/internal/domain/profile"
)

// This file is the single serialization boundary: every route maps domain
// values through these pure functions, so ids become strings and dates
// become ISO-8601 in exactly one place. Absent optional fields are omitted
// rather than sent as null.

const dateOnlyLayout = "2006-01-02"

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateOnlyLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// flexTime accepts both RFC3339 timestamps and bare dates, which is what
// date-picker clients send.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, dateOnlyLayout} {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", s)
}

// Profile DTOs

type ContactDTO struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

type SocialLinksDTO struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

type ProfileDTO struct {
	OwnerID         string             `json:"owner_id"`
	Email           string             `json:"email"`
	Name            string             `json:"name"`
	JobTitle        string             `json:"job_title"`
	Role            string             `json:"role"`
	IsApproved      bool               `json:"is_approved"`
	ApprovalRequest bool               `json:"approval_request"`
	Image           string             `json:"image,omitempty"`
	Bio             string             `json:"bio"`
	AboutYourself   string             `json:"about_yourself"`
	Background      string             `json:"background"`
	Contact         ContactDTO         `json:"contact"`
	SocialLinks     SocialLinksDTO     `json:"social_links"`
	Skills          []SkillDTO         `json:"skills"`
	Experience      []ExperienceDTO    `json:"experience"`
	Education       []EducationDTO     `json:"education"`
	Projects        []ProjectDTO       `json:"projects"`
	BlogPosts       []BlogPostDTO      `json:"blog_posts"`
	Certifications  []CertificationDTO `json:"certifications"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		OwnerID:         p.OwnerID.String(),
		Email:           p.Email,
		Name:            p.Name,
		JobTitle:        p.JobTitle,
		Role:            string(p.Role),
		IsApproved:      p.IsApproved,
		ApprovalRequest: p.ApprovalRequest,
		Image:           p.Image,
		Bio:             p.Bio,
		AboutYourself:   p.AboutYourself,
		Background:      p.Background,
		Contact:         ContactDTO(p.Contact),
		SocialLinks:     SocialLinksDTO(p.SocialLinks),
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
	dto.Skills = make([]SkillDTO, len(p.Skills))
	for i, s := range p.Skills {
		dto.Skills[i] = ToSkillDTO(s)
	}
	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ToExperienceDTO(e)
	}
	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = ToEducationDTO(e)
	}
	dto.Projects = make([]ProjectDTO, len(p.Projects))
	for i, pr := range p.Projects {
		dto.Projects[i] = ToProjectDTO(pr)
	}
	dto.BlogPosts = make([]BlogPostDTO, len(p.BlogPosts))
	for i, b := range p.BlogPosts {
		dto.BlogPosts[i] = ToBlogPostDTO(b)
	}
	dto.Certifications = make([]CertificationDTO, len(p.Certifications))
	for i, c := range p.Certifications {
		dto.Certifications[i] = ToCertificationDTO(c)
	}
	return dto
}

type UpdateProfileRequest struct {
	Name          *string         `json:"name"`
	JobTitle      *string         `json:"job_title"`
	Role          *string         `json:"role"`
	Bio           *string         `json:"bio"`
	AboutYourself *string         `json:"about_yourself"`
	Background    *string         `json:"background"`
	Image         *string         `json:"image"`
	Contact       *ContactDTO     `json:"contact"`
	SocialLinks   *SocialLinksDTO `json:"social_links"`
}

func (r *UpdateProfileRequest) ToUpdateFields() profile.UpdateFields {
	fields := profile.UpdateFields{
		Name:          r.Name,
		JobTitle:      r.JobTitle,
		Role:          r.Role,
		Bio:           r.Bio,
		AboutYourself: r.AboutYourself,
		Background:    r.Background,
		Image:         r.Image,
	}
	if r.Contact != nil {
		contact := profile.Contact(*r.Contact)
		fields.Contact = &contact
	}
	if r.SocialLinks != nil {
		links := profile.SocialLinks(*r.SocialLinks)
		fields.SocialLinks = &links
	}
	return fields
}

// Skill DTOs

type SkillDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
}

type SkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Proficiency int    `json:"proficiency" binding:"min=0,max=100"`
}

func (r SkillRequest) ToDomain() profile.Skill {
	return profile.Skill{
		Name:        r.Name,
		Category:    r.Category,
		Proficiency: r.Proficiency,
	}
}

func ToSkillDTO(s profile.Skill) SkillDTO {
	return SkillDTO{
		ID:          s.ID.String(),
		Name:        s.Name,
		Category:    s.Category,
		Proficiency: s.Proficiency,
	}
}

// Experience DTOs

type ExperienceDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type ExperienceRequest struct {
	Title       string    `json:"title" binding:"required"`
	Company     string    `json:"company" binding:"required"`
	StartDate   flexTime  `json:"start_date"`
	EndDate     *flexTime `json:"end_date"`
	Current     bool      `json:"current"`
	Description string    `json:"description"`
}

func (r ExperienceRequest) ToDomain() profile.Experience {
	e := profile.Experience{
		Title:       r.Title,
		Company:     r.Company,
		StartDate:   r.StartDate.Time,
		Current:     r.Current,
		Description: r.Description,
	}
	if r.EndDate != nil && !r.EndDate.IsZero() {
		end := r.EndDate.Time
		e.EndDate = &end
	}
	return e
}

func ToExperienceDTO(e profile.Experience) ExperienceDTO {
	return ExperienceDTO{
		ID:          e.ID.String(),
		Title:       e.Title,
		Company:     e.Company,
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDatePtr(e.EndDate),
		Current:     e.Current,
		Description: e.Description,
	}
}

// Education DTOs

type EducationDTO struct {
	ID          string `json:"id"`
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type EducationRequest struct {
	School      string    `json:"school" binding:"required"`
	Degree      string    `json:"degree" binding:"required"`
	Field       string    `json:"field" binding:"required"`
	StartDate   flexTime  `json:"start_date"`
	EndDate     *flexTime `json:"end_date"`
	Description string    `json:"description"`
}

func (r EducationRequest) ToDomain() profile.Education {
	e := profile.Education{
		School:      r.School,
		Degree:      r.Degree,
		Field:       r.Field,
		StartDate:   r.StartDate.Time,
		Description: r.Description,
	}
	if r.EndDate != nil && !r.EndDate.IsZero() {
		end := r.EndDate.Time
		e.EndDate = &end
	}
	return e
}

func ToEducationDTO(e profile.Education) EducationDTO {
	return EducationDTO{
		ID:          e.ID.String(),
		School:      e.School,
		Degree:      e.Degree,
		Field:       e.Field,
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDatePtr(e.EndDate),
		Description: e.Description,
	}
}

// Project DTOs

type ProjectDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Image        string `json:"image,omitempty"`
	DemoURL      string `json:"demo_url,omitempty"`
	GithubURL    string `json:"github_url,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Featured     bool   `json:"featured"`
}

type ProjectRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Image        string `json:"image"`
	DemoURL      string `json:"demo_url"`
	GithubURL    string `json:"github_url"`
	Technologies string `json:"technologies"`
	Featured     bool   `json:"featured"`
}

func (r ProjectRequest) ToDomain() profile.Project {
	return profile.Project{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		DemoURL:      r.DemoURL,
		GithubURL:    r.GithubURL,
		Technologies: r.Technologies,
		Featured:     r.Featured,
	}
}

func ToProjectDTO(p profile.Project) ProjectDTO {
	return ProjectDTO{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		DemoURL:      p.DemoURL,
		GithubURL:    p.GithubURL,
		Technologies: p.Technologies,
		Featured:     p.Featured,
	}
}

// Blog post DTOs

type BlogPostDTO struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

type BlogPostRequest struct {
	Title     string   `json:"title" binding:"required"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Date      flexTime `json:"date"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

func (r BlogPostRequest) ToDomain() profile.BlogPost {
	published := true
	if r.Published != nil {
		published = *r.Published
	}
	return profile.BlogPost{
		Title:     r.Title,
		Slug:      r.Slug,
		Content:   r.Content,
		Excerpt:   r.Excerpt,
		Date:      r.Date.Time,
		Tags:      r.Tags,
		Published: published,
	}
}

func ToBlogPostDTO(b profile.BlogPost) BlogPostDTO {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogPostDTO{
		ID:        b.ID.String(),
		Title:     b.Title,
		Slug:      b.Slug,
		Content:   b.Content,
		Excerpt:   b.Excerpt,
		Date:      formatTime(b.Date),
		Tags:      tags,
		Published: b.Published,
	}
}

// Certification DTOs

type CertificationDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Image  string `json:"image,omitempty"`
	Link   string `json:"link"`
}

func ToCertificationDTO(c profile.Certification) CertificationDTO {
	return CertificationDTO{
		ID:     c.ID.String(),
		Title:  c.Title,
		Issuer: c.Issuer,
		Date:   c.Date,
		Image:  c.Image,
		Link:   c.Link,
	}
}
