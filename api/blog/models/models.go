package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FeaturedSlot values understood by the content API.
const (
	SlotNone      = "none"
	SlotMain      = "main"
	SlotMini      = "mini"
	SlotPortfolio = "portfolio"
)

// Post is the client's ephemeral copy of a post owned by the
// content API.
type Post struct {
	Id             int      `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Author         string   `json:"author"`
	AuthorImageUrl string   `json:"author_image_url"`
	Excerpt        string   `json:"excerpt"`
	Description    string   `json:"description"`
	Content        string   `json:"content"`
	CoverImageUrl  string   `json:"cover_image_url"`
	VideoUrls      []string `json:"video_urls"`
	FeaturedSlot   string   `json:"featured_slot"`
	FeaturedRank   *int     `json:"featured_rank"`
	SeriesKey      string   `json:"series_key"`
	SeriesPart     *int     `json:"series_part"`

	// legacy field name for SeriesPart still used by older posts
	Part *int `json:"part"`

	CreatedAt time.Time `json:"created_at"`
}

// Normalize reconciles the legacy field aliases the content API may
// return so the rest of the program only deals with one shape.
func (p *Post) Normalize() {
	if p.Content == "" && p.Description != "" {
		p.Content = p.Description
	}
	if p.Excerpt == "" && p.Description != "" {
		p.Excerpt = p.Description
	}
	if p.SeriesPart == nil && p.Part != nil {
		p.SeriesPart = p.Part
	}
	if p.FeaturedSlot == "" {
		p.FeaturedSlot = SlotNone
	}
}

// PartOrdinal returns the post's position within its series.
// Posts without a part number sort after every numbered part.
func (p *Post) PartOrdinal() int {
	if p.SeriesPart == nil {
		return 999999
	}
	return *p.SeriesPart
}

// ProvisionalIdPrefix marks comment ids generated locally
// before the server has confirmed the comment.
const ProvisionalIdPrefix = "tmp-"

// Comment on a post. Id is a string because provisional comments
// carry a client-generated id until the server assigns a real one.
type Comment struct {
	Id        string    `json:"id"`
	PostId    int       `json:"post_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// IsProvisional reports whether this comment has not been
// confirmed by the server yet.
func (c *Comment) IsProvisional() bool {
	return strings.HasPrefix(c.Id, ProvisionalIdPrefix)
}

// NewProvisionalComment builds the locally-owned comment shown
// while the create request is in flight.
func NewProvisionalComment(postId int, author, body string) *Comment {
	return &Comment{
		Id:        fmt.Sprintf("%s%d", ProvisionalIdPrefix, time.Now().UnixMilli()),
		PostId:    postId,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// the content API serialises comment ids as numbers
func (c *Comment) UnmarshalJSON(data []byte) error {
	type commentAlias Comment
	aux := &struct {
		Id any `json:"id"`
		*commentAlias
	}{
		commentAlias: (*commentAlias)(c),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	switch id := aux.Id.(type) {
	case float64:
		c.Id = strconv.FormatInt(int64(id), 10)
	case string:
		c.Id = id
	case nil:
		c.Id = ""
	default:
		return fmt.Errorf("unsupported comment id type %T", aux.Id)
	}
	return nil
}

// FeaturedSet is the curated front-page selection.
type FeaturedSet struct {
	Main  *Post   `json:"main"`
	Minis []*Post `json:"minis"`
}

// SeriesInfo groups the posts sharing a series key, ordered by part.
type SeriesInfo struct {
	Key   string
	Items []*Post

	// Prev and Next are relative to the post the series
	// was fetched for, nil at either end.
	Prev *Post
	Next *Post
}

// Quote is a single market quote from the news endpoint.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prevClose"`
	Change    float64 `json:"change"`
	Percent   float64 `json:"percent"`
	Exchange  string  `json:"exchange"`
	Currency  string  `json:"currency"`
}

// Story is one external headline in the curated news digest.
type Story struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Summary   string `json:"summary"`
	Image     string `json:"image"`
	Published string `json:"published"`
}

// NewsDigest is the curated headline layout for the news screen.
type NewsDigest struct {
	Hero     *Story   `json:"hero"`
	TopRight *Story   `json:"topRight"`
	SubCards []*Story `json:"subCards"`
	Latest   []*Story `json:"latest"`
}
