package blog

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/inklinehq/Inkline-CLI/media"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// Limits enforced locally before a draft is ever sent to the server.
const (
	TITLE_MAX_LEN   = 100
	EXCERPT_MAX_LEN = 250

	// CONTENT_MAX_LEN counts the visible text, not the markup
	CONTENT_MAX_LEN = 5000

	// length of the excerpt derived from content when none is given
	DERIVED_EXCERPT_LEN = 220
)

// PlainText strips the markup from rich HTML content and collapses
// the remaining whitespace.
func PlainText(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		// not parseable as HTML, treat it as plain text
		return strings.Join(strings.Fields(htmlContent), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// DeriveExcerpt builds the short listing excerpt from the post's
// content, the same way the server would.
func DeriveExcerpt(htmlContent string) string {
	text := PlainText(htmlContent)
	runes := []rune(text)
	if len(runes) > DERIVED_EXCERPT_LEN {
		return string(runes[:DERIVED_EXCERPT_LEN])
	}
	return text
}

// Draft is the locally-authored post payload before submission.
type Draft struct {
	Title         string
	Category      string
	Author        string
	Excerpt       string
	Content       string
	CoverImageUrl string
	VideoUrls     []string
	FeaturedSlot  string
	FeaturedRank  *int
	SeriesKey     string
	SeriesPart    *int
}

// Validate checks the draft locally so an invalid draft never
// costs a network round trip. The returned error message is meant
// to be shown to the user as-is.
func (d *Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return fmt.Errorf(
			"input error %d: a title is required",
			utils.INPUT_ERROR,
		)
	}
	if len([]rune(title)) > TITLE_MAX_LEN {
		return fmt.Errorf(
			"input error %d: the title cannot be longer than %d characters",
			utils.INPUT_ERROR,
			TITLE_MAX_LEN,
		)
	}

	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf(
			"input error %d: the post has no content",
			utils.INPUT_ERROR,
		)
	}
	if contentLen := len([]rune(PlainText(d.Content))); contentLen > CONTENT_MAX_LEN {
		return fmt.Errorf(
			"input error %d: the content is %d characters long, the limit is %d",
			utils.INPUT_ERROR,
			contentLen,
			CONTENT_MAX_LEN,
		)
	}

	if len([]rune(d.Excerpt)) > EXCERPT_MAX_LEN {
		return fmt.Errorf(
			"input error %d: the excerpt cannot be longer than %d characters",
			utils.INPUT_ERROR,
			EXCERPT_MAX_LEN,
		)
	}

	if strings.Contains(d.Content, media.ProvisionalScheme) {
		return fmt.Errorf(
			"input error %d: the content still contains an unresolved media reference",
			utils.INPUT_ERROR,
		)
	}

	return nil
}

// payload builds the JSON body for POST /posts and PATCH /posts/{id}.
// The description field mirrors the excerpt for older readers of
// the API.
func (d *Draft) payload() map[string]any {
	excerpt := strings.TrimSpace(d.Excerpt)
	if excerpt == "" {
		excerpt = DeriveExcerpt(d.Content)
	}

	featuredSlot := d.FeaturedSlot
	if featuredSlot == "" {
		featuredSlot = "none"
	}

	body := map[string]any{
		"title":           strings.TrimSpace(d.Title),
		"category":        CanonicalCategory(d.Category),
		"author":          d.Author,
		"excerpt":         excerpt,
		"description":     excerpt,
		"content":         d.Content,
		"cover_image_url": d.CoverImageUrl,
		"video_urls":      d.VideoUrls,
		"featured_slot":   featuredSlot,
	}
	if d.FeaturedRank != nil {
		body["featured_rank"] = *d.FeaturedRank
	}
	if d.SeriesKey != "" {
		body["series_key"] = d.SeriesKey
	}
	if d.SeriesPart != nil {
		body["series_part"] = *d.SeriesPart
	}
	return body
}
