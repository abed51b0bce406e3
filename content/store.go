package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// Data file names under the store directory.
const (
	portfolioFile = "portfolio.json"
	blogsFile     = "blogs.json"
	siteFile      = "site.json"
)

// Store persists content as flat JSON files. Reads materialize a fallback
// when a file is missing; writes are read-modify-write through updater
// callbacks, serialized by a store-wide mutex so concurrent admin saves
// cannot interleave.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on
// first use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// readJSON loads path into out. A missing file writes the fallback value
// (already present in out) and succeeds.
func (s *Store) readJSON(path string, out any) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.writeJSON(path, out)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return json.Unmarshal(raw, out)
}

// writeJSON marshals v with two-space indentation and a trailing newline,
// matching the hand-editable format the data files ship in.
func (s *Store) writeJSON(path string, v any) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	formatted, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(formatted, '\n'), 0o644)
}

// Portfolio returns the portfolio data, creating an empty file when absent.
func (s *Store) Portfolio() (PortfolioData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolioLocked()
}

func (s *Store) portfolioLocked() (PortfolioData, error) {
	data := emptyPortfolio()
	err := s.readJSON(s.path(portfolioFile), &data)
	return data, err
}

// UpdatePortfolio applies fn to a copy of the current data and persists
// the result.
func (s *Store) UpdatePortfolio(fn func(*PortfolioData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.portfolioLocked()
	if err != nil {
		return err
	}
	if err := fn(&data); err != nil {
		return err
	}
	return s.writeJSON(s.path(portfolioFile), data)
}

// BlogPosts returns all stored posts, creating an empty file when absent.
func (s *Store) BlogPosts() ([]BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blogPostsLocked()
}

func (s *Store) blogPostsLocked() ([]BlogPost, error) {
	posts := []BlogPost{}
	err := s.readJSON(s.path(blogsFile), &posts)
	return posts, err
}

// UpdateBlogPosts applies fn to the current posts and persists the result.
func (s *Store) UpdateBlogPosts(fn func([]BlogPost) ([]BlogPost, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.blogPostsLocked()
	if err != nil {
		return err
	}
	next, err := fn(posts)
	if err != nil {
		return err
	}
	return s.writeJSON(s.path(blogsFile), next)
}

// Site returns the site content, materializing the default copy when the
// file is absent.
func (s *Store) Site() (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.siteLocked()
}

func (s *Store) siteLocked() (SiteContent, error) {
	site := DefaultSiteContent()
	err := s.readJSON(s.path(siteFile), &site)
	return site, err
}

// UpdateSite applies fn to the current site content and persists the
// result.
func (s *Store) UpdateSite(fn func(*SiteContent) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	site, err := s.siteLocked()
	if err != nil {
		return err
	}
	if err := fn(&site); err != nil {
		return err
	}
	return s.writeJSON(s.path(siteFile), site)
}

func emptyPortfolio() PortfolioData {
	return PortfolioData{
		Projects:       []Project{},
		AIExperiments:  []AIExperiment{},
		Experiences:    []Experience{},
		Skills:         []Skill{},
		Certifications: []Certification{},
		Services:       []ServiceEntry{},
		FAQs:           []FAQ{},
	}
}

// DefaultSiteContent is the copy served before the admin has saved any.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		Hero: HeroContent{
			Name:      "Zainab Hamid",
			Role:      "Chief Developer & AI Engineer",
			Intro:     "I transform complex problems into elegant, scalable solutions.",
			Summary:   "Welcome to my digital space where I showcase my journey, projects, and expertise in the world of technology.",
			ResumeURL: "/placeholder-resume.pdf",
		},
		About: AboutContent{
			ImageSrc:     "/images/zainab-side.png",
			ImageAlt:     "Professional portrait of Zainab Hamid",
			StoryHeading: "My Story",
			StoryParagraphs: []string{
				"Hello! I'm Zainab Hamid, a Chief Developer and AI Engineer with a deep passion for creating impactful and innovative technology solutions.",
				"Over the years, I've honed my skills across various domains, from crafting intelligent algorithms for AI applications to building seamless user interfaces for web and mobile platforms.",
			},
			ExpertiseHeading: "Expertise & Philosophy",
			ExpertiseParagraphs: []string{
				"My expertise lies in bridging the gap between complex technical challenges and user-friendly solutions.",
				"I'm always excited to collaborate on projects that push the boundaries of technology and create lasting value.",
			},
		},
	}
}
