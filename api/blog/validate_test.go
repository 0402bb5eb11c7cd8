package blog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	assert.Equal(
		t,
		"Hello world again",
		PlainText("<p>Hello <b>world</b></p>\n<p>again</p>"),
	)
	assert.Equal(t, "plain", PlainText("plain"))
	assert.Equal(t, "", PlainText(""))
}

func TestDeriveExcerpt(t *testing.T) {
	short := DeriveExcerpt("<p>short intro</p>")
	assert.Equal(t, "short intro", short)

	long := DeriveExcerpt("<p>" + strings.Repeat("word ", 100) + "</p>")
	assert.Len(t, []rune(long), DERIVED_EXCERPT_LEN)
}

func TestDraftValidate(t *testing.T) {
	valid := func() *Draft {
		return &Draft{
			Title:    "A day in the mountains",
			Category: "travel",
			Author:   "jan",
			Content:  "<p>It was windy.</p>",
		}
	}

	t.Run("valid draft", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("empty title", func(t *testing.T) {
		d := valid()
		d.Title = "   "
		assert.Error(t, d.Validate())
	})

	t.Run("title too long", func(t *testing.T) {
		d := valid()
		d.Title = strings.Repeat("x", TITLE_MAX_LEN+1)
		assert.Error(t, d.Validate())
	})

	t.Run("no content", func(t *testing.T) {
		d := valid()
		d.Content = ""
		assert.Error(t, d.Validate())
	})

	t.Run("content limit counts text not markup", func(t *testing.T) {
		d := valid()
		d.Content = "<p>" + strings.Repeat("a", CONTENT_MAX_LEN) + "</p>"
		assert.NoError(t, d.Validate(), "markup does not count against the limit")

		d.Content = "<p>" + strings.Repeat("a", CONTENT_MAX_LEN+1) + "</p>"
		assert.Error(t, d.Validate())
	})

	t.Run("excerpt too long", func(t *testing.T) {
		d := valid()
		d.Excerpt = strings.Repeat("x", EXCERPT_MAX_LEN+1)
		assert.Error(t, d.Validate())
	})

	t.Run("unresolved media reference", func(t *testing.T) {
		d := valid()
		d.Content = `<p>hi</p><img src="pending://asset-1.png"/>`
		assert.Error(t, d.Validate())
	})
}

func TestDraftPayload(t *testing.T) {
	d := &Draft{
		Title:    "Title",
		Category: "TRAVEL",
		Author:   "jan",
		Content:  "<p>body text</p>",
	}
	payload := d.payload()

	assert.Equal(t, "Travel", payload["category"])
	assert.Equal(t, "body text", payload["excerpt"], "the excerpt is derived from content when empty")
	assert.Equal(t, payload["excerpt"], payload["description"], "description mirrors the excerpt")
	assert.Equal(t, "none", payload["featured_slot"])
	_, hasRank := payload["featured_rank"]
	assert.False(t, hasRank)
}

func TestCanonicalCategory(t *testing.T) {
	assert.Equal(t, "Programming", CanonicalCategory("programming"))
	assert.Equal(t, "Data-science", CanonicalCategory("DATA-SCIENCE"))
	assert.Equal(t, "Travel", CanonicalCategory(" travel "))
	assert.Equal(t, "Cooking", CanonicalCategory("Cooking"), "unknown categories pass through")
}

func TestBuildUpdateSection(t *testing.T) {
	stamp := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	section := BuildUpdateSection("<p>fixed a typo</p>", stamp)

	assert.True(t, strings.HasPrefix(section, "<hr/><section class=\"post-update\">"))
	assert.Contains(t, section, "Mar 5, 2024 2:30 PM")
	assert.Contains(t, section, "<p>fixed a typo</p>")
	assert.True(t, strings.HasSuffix(section, "</section>"))
}
