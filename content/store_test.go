package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PortfolioMaterializesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	data, err := s.Portfolio()
	require.NoError(t, err)
	assert.Empty(t, data.Projects)
	assert.Empty(t, data.Skills)

	raw, err := os.ReadFile(filepath.Join(dir, "portfolio.json"))
	require.NoError(t, err, "missing file is written back with the fallback")
	assert.Contains(t, string(raw), `"projects": []`)
}

func TestStore_UpdatePortfolioRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	err := s.UpdatePortfolio(func(d *PortfolioData) error {
		d.Skills = append(d.Skills, Skill{Name: "Go", Category: "Languages"})
		return nil
	})
	require.NoError(t, err)

	data, err := s.Portfolio()
	require.NoError(t, err)
	require.Len(t, data.Skills, 1)
	assert.Equal(t, "Go", data.Skills[0].Name)
}

func TestStore_UpdateErrorDoesNotPersist(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.UpdateBlogPosts(func(posts []BlogPost) ([]BlogPost, error) {
		return append(posts, BlogPost{ID: "a", Slug: "first"}), nil
	}))
	err := s.UpdateBlogPosts(func(posts []BlogPost) ([]BlogPost, error) {
		return nil, assert.AnError
	})
	require.Error(t, err)

	posts, err := s.BlogPosts()
	require.NoError(t, err)
	assert.Len(t, posts, 1, "failed update leaves the file untouched")
}

func TestStore_SiteDefaultsWhenAbsent(t *testing.T) {
	s := NewStore(t.TempDir())

	site, err := s.Site()
	require.NoError(t, err)
	assert.Equal(t, "Zainab Hamid", site.Hero.Name)
	assert.NotEmpty(t, site.About.StoryParagraphs)
}

func TestStore_WritesIndentedJSONWithTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	require.NoError(t, s.UpdateSite(func(c *SiteContent) error { return nil }))

	raw, err := os.ReadFile(filepath.Join(dir, "site.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "\n"))
	assert.Contains(t, string(raw), "  \"hero\"")
}
