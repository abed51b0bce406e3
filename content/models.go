// Package content manages the site's editable content: the portfolio
// sections, blog posts, and hero/about copy, all persisted as flat JSON
// files under a data directory.
package content

// Project is a portfolio entry shown on the portfolio page.
type Project struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	ImageSrc    string   `json:"imageSrc" validate:"required"`
	DataAIHint  string   `json:"dataAiHint,omitempty"`
	Tags        []string `json:"tags"`
	LiveLink    string   `json:"liveLink,omitempty"`
	SourceLink  string   `json:"sourceLink,omitempty"`
	Category    string   `json:"category" validate:"required"`
}

// AIExperiment is an interactive demo shown on the AI experiments page.
type AIExperiment struct {
	ID              string   `json:"id" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	ImageSrc        string   `json:"imageSrc" validate:"required"`
	DataAIHint      string   `json:"dataAiHint,omitempty"`
	Tags            []string `json:"tags"`
	InteractiveLink string   `json:"interactiveLink,omitempty"`
}

// Experience is a résumé entry on the about page.
type Experience struct {
	Role        string   `json:"role" validate:"required"`
	Company     string   `json:"company" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Description []string `json:"description" validate:"required,dive,required"`
}

// Skill is a named skill grouped by category.
type Skill struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Certification is a credential listed on the about page.
type Certification struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Link   string `json:"link,omitempty"`
}

// ServiceEntry is an offering listed on the services page. The icon is a
// symbolic key resolved by the templates.
type ServiceEntry struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
}

// FAQ is a question/answer pair on the contact page.
type FAQ struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// PortfolioData is the full contents of portfolio.json.
type PortfolioData struct {
	Projects       []Project       `json:"projects"`
	AIExperiments  []AIExperiment  `json:"aiExperiments"`
	Experiences    []Experience    `json:"experiences"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Services       []ServiceEntry  `json:"services"`
	FAQs           []FAQ           `json:"faqs"`
}

// BlogPost is a stored blog entry; Content is raw markdown.
type BlogPost struct {
	ID         string   `json:"id"`
	Title      string   `json:"title" validate:"required"`
	Slug       string   `json:"slug" validate:"required"`
	Excerpt    string   `json:"excerpt" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"required"`
	Date       string   `json:"date" validate:"required"`
	Category   string   `json:"category" validate:"required"`
	ReadTime   int      `json:"readTime" validate:"required,gt=0"`
	Tags       []string `json:"tags"`
	Content    string   `json:"content" validate:"required"`
}

// HeroContent is the home-page hero copy.
type HeroContent struct {
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Intro     string `json:"intro" validate:"required"`
	Summary   string `json:"summary" validate:"required"`
	ResumeURL string `json:"resumeUrl" validate:"required"`
}

// AboutContent is the about-page copy.
type AboutContent struct {
	ImageSrc            string   `json:"imageSrc" validate:"required"`
	ImageAlt            string   `json:"imageAlt" validate:"required"`
	StoryHeading        string   `json:"storyHeading" validate:"required"`
	StoryParagraphs     []string `json:"storyParagraphs" validate:"required,min=1,dive,required"`
	ExpertiseHeading    string   `json:"expertiseHeading" validate:"required"`
	ExpertiseParagraphs []string `json:"expertiseParagraphs" validate:"required,min=1,dive,required"`
	ClosingParagraph    string   `json:"closingParagraph"`
}

// SiteContent is the full contents of site.json.
type SiteContent struct {
	Hero  HeroContent  `json:"hero"`
	About AboutContent `json:"about"`
}
