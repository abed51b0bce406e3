package content

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Service exposes the read and write operations the pages and the admin
// API work with.
type Service struct {
	store *Store
}

// NewService wraps a store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// --- reads ---

func (c *Service) Projects() ([]Project, error) {
	data, err := c.store.Portfolio()
	return data.Projects, err
}

func (c *Service) AIExperiments() ([]AIExperiment, error) {
	data, err := c.store.Portfolio()
	return data.AIExperiments, err
}

func (c *Service) Experiences() ([]Experience, error) {
	data, err := c.store.Portfolio()
	return data.Experiences, err
}

func (c *Service) Skills() ([]Skill, error) {
	data, err := c.store.Portfolio()
	return data.Skills, err
}

func (c *Service) Certifications() ([]Certification, error) {
	data, err := c.store.Portfolio()
	return data.Certifications, err
}

func (c *Service) Services() ([]ServiceEntry, error) {
	data, err := c.store.Portfolio()
	return data.Services, err
}

func (c *Service) FAQs() ([]FAQ, error) {
	data, err := c.store.Portfolio()
	return data.FAQs, err
}

func (c *Service) Site() (SiteContent, error) {
	return c.store.Site()
}

// --- portfolio section saves ---

// Each save validates every entry, rejects duplicate IDs where the section
// carries them, and replaces the section wholesale.

func (c *Service) SaveProjects(entries []Project) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if dup := findDuplicateIDs(ids); len(dup) > 0 {
		return duplicateIDError(dup)
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.Projects = entries
		return nil
	})
}

func (c *Service) SaveAIExperiments(entries []AIExperiment) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if dup := findDuplicateIDs(ids); len(dup) > 0 {
		return duplicateIDError(dup)
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.AIExperiments = entries
		return nil
	})
}

func (c *Service) SaveExperiences(entries []Experience) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.Experiences = entries
		return nil
	})
}

func (c *Service) SaveSkills(entries []Skill) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.Skills = entries
		return nil
	})
}

func (c *Service) SaveCertifications(entries []Certification) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.Certifications = entries
		return nil
	})
}

func (c *Service) SaveServices(entries []ServiceEntry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if dup := findDuplicateIDs(ids); len(dup) > 0 {
		return duplicateIDError(dup)
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.Services = entries
		return nil
	})
}

func (c *Service) SaveFAQs(entries []FAQ) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	return c.store.UpdatePortfolio(func(d *PortfolioData) error {
		d.FAQs = entries
		return nil
	})
}

// --- site content saves ---

func (c *Service) SaveHero(hero HeroContent) error {
	if err := validateEntries([]HeroContent{hero}); err != nil {
		return err
	}
	return c.store.UpdateSite(func(s *SiteContent) error {
		s.Hero = hero
		return nil
	})
}

// SaveAbout trims all copy and drops empty paragraphs before validating.
func (c *Service) SaveAbout(about AboutContent) error {
	about.ImageSrc = strings.TrimSpace(about.ImageSrc)
	about.ImageAlt = strings.TrimSpace(about.ImageAlt)
	if about.ImageAlt == "" {
		about.ImageAlt = "About portrait"
	}
	about.StoryHeading = strings.TrimSpace(about.StoryHeading)
	about.StoryParagraphs = trimParagraphs(about.StoryParagraphs)
	about.ExpertiseHeading = strings.TrimSpace(about.ExpertiseHeading)
	about.ExpertiseParagraphs = trimParagraphs(about.ExpertiseParagraphs)
	about.ClosingParagraph = strings.TrimSpace(about.ClosingParagraph)

	if err := validateEntries([]AboutContent{about}); err != nil {
		return err
	}
	return c.store.UpdateSite(func(s *SiteContent) error {
		s.About = about
		return nil
	})
}

func trimParagraphs(paragraphs []string) []string {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// --- blog ---

// BlogSummary is the listing view of a post.
type BlogSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	CoverImage  string   `json:"coverImage"`
	Date        string   `json:"date"` // display form, e.g. "January 2, 2026"
	PublishedAt string   `json:"publishedAt"`
	Category    string   `json:"category"`
	ReadTime    int      `json:"readTime"`
	Tags        []string `json:"tags"`
}

// BlogDetail adds the raw markdown and rendered HTML.
type BlogDetail struct {
	BlogSummary
	Content string `json:"content"`
	HTML    string `json:"html"`
}

// BlogPage is one page of summaries.
type BlogPage struct {
	Posts       []BlogSummary `json:"posts"`
	Total       int           `json:"total"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	PageSize    int           `json:"pageSize"`
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func toSummary(post BlogPost) BlogSummary {
	display := post.Date
	if parsed, err := time.Parse("2006-01-02", post.Date); err == nil {
		display = parsed.Format("January 2, 2006")
	}
	return BlogSummary{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		CoverImage:  post.CoverImage,
		Date:        display,
		PublishedAt: post.Date,
		Category:    post.Category,
		ReadTime:    post.ReadTime,
		Tags:        post.Tags,
	}
}

// BlogSummaries returns all posts, newest first.
func (c *Service) BlogSummaries() ([]BlogSummary, error) {
	posts, err := c.store.BlogPosts()
	if err != nil {
		return nil, err
	}
	summaries := make([]BlogSummary, len(posts))
	for i, post := range posts {
		summaries[i] = toSummary(post)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PublishedAt > summaries[j].PublishedAt
	})
	return summaries, nil
}

// BlogBySlug returns a rendered post, or ErrNotFound.
func (c *Service) BlogBySlug(slug string) (*BlogDetail, error) {
	posts, err := c.store.BlogPosts()
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.Slug != slug {
			continue
		}
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(post.Content), &buf); err != nil {
			return nil, fmt.Errorf("rendering post %s: %w", post.ID, err)
		}
		return &BlogDetail{
			BlogSummary: toSummary(post),
			Content:     post.Content,
			HTML:        buf.String(),
		}, nil
	}
	return nil, ErrNotFound
}

// BlogPageOf returns page/pageSize of summaries, clamping the page into
// range.
func (c *Service) BlogPageOf(page, pageSize int) (BlogPage, error) {
	if pageSize <= 0 {
		pageSize = 6
	}
	summaries, err := c.BlogSummaries()
	if err != nil {
		return BlogPage{}, err
	}
	total := len(summaries)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return BlogPage{
		Posts:       summaries[start:end],
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}, nil
}

// UpsertBlogPost creates (empty ID) or updates (existing ID) a post.
// Slugs must be unique and match the slug alphabet; the date is normalized
// to YYYY-MM-DD; tags are trimmed and de-duplicated. New posts are
// prepended.
func (c *Service) UpsertBlogPost(input BlogPost) (BlogPost, error) {
	if !slugRE.MatchString(input.Slug) {
		return BlogPost{}, &ValidationError{Messages: []string{
			"slug may only include lowercase letters, numbers, and hyphens",
		}}
	}
	normalized, err := normalizeDate(input.Date)
	if err != nil {
		return BlogPost{}, &ValidationError{Messages: []string{"invalid publish date"}}
	}
	input.Date = normalized
	input.Tags = dedupeTags(input.Tags)

	if err := validateEntries([]BlogPost{input}); err != nil {
		return BlogPost{}, err
	}

	var saved BlogPost
	err = c.store.UpdateBlogPosts(func(posts []BlogPost) ([]BlogPost, error) {
		for _, post := range posts {
			if post.Slug == input.Slug && post.ID != input.ID {
				return nil, fmt.Errorf("%w: %q", ErrSlugTaken, input.Slug)
			}
		}
		if input.ID != "" {
			for i, post := range posts {
				if post.ID == input.ID {
					posts[i] = input
					saved = input
					return posts, nil
				}
			}
			return nil, ErrNotFound
		}
		input.ID = uuid.NewString()
		saved = input
		return append([]BlogPost{input}, posts...), nil
	})
	if err != nil {
		return BlogPost{}, err
	}
	return saved, nil
}

// DeleteBlogPost removes a post by ID, or returns ErrNotFound.
func (c *Service) DeleteBlogPost(id string) error {
	return c.store.UpdateBlogPosts(func(posts []BlogPost) ([]BlogPost, error) {
		for i, post := range posts {
			if post.ID == id {
				return append(posts[:i], posts[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// normalizeDate accepts YYYY-MM-DD or RFC3339 and returns YYYY-MM-DD.
func normalizeDate(raw string) (string, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
