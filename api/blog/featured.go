package blog

import (
	"context"
	"sort"
	"strconv"

	"github.com/inklinehq/Inkline-CLI/api/blog/models"
)

// GetFeatured fetches the curated front-page selection: one main
// post and up to limitMinis secondary posts.
func (c *Client) GetFeatured(ctx context.Context, limitMinis int) (*models.FeaturedSet, error) {
	if limitMinis <= 0 {
		limitMinis = 5
	}

	var featured models.FeaturedSet
	err := c.getJson(
		ctx,
		c.url("/featured"),
		map[string]string{
			"limit_minis": strconv.Itoa(limitMinis),
		},
		&featured,
	)
	if err != nil {
		return nil, err
	}

	if featured.Main != nil {
		featured.Main.Normalize()
	}
	for _, post := range featured.Minis {
		post.Normalize()
	}
	return &featured, nil
}

// GetPortfolio lists the posts curated into the portfolio slot.
func (c *Client) GetPortfolio(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := c.getJson(ctx, c.url("/portfolio"), nil, &posts)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		post.Normalize()
	}
	return posts, nil
}

// seriesResponse tolerates both field names deployed servers
// use for the list of posts in a series.
type seriesResponse struct {
	Key   string         `json:"series_key"`
	Items []*models.Post `json:"items"`
	All   []*models.Post `json:"all"`
}

// GetSeries fetches the series a post belongs to, ordered by part
// number with unnumbered parts last, ties broken by creation time.
// Prev and Next are resolved relative to postId.
func (c *Client) GetSeries(ctx context.Context, postId int) (*models.SeriesInfo, error) {
	var res seriesResponse
	err := c.getJson(ctx, c.url("/posts/%d/series", postId), nil, &res)
	if err != nil {
		return nil, err
	}

	items := res.Items
	if len(items) == 0 {
		items = res.All
	}
	for _, post := range items {
		post.Normalize()
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PartOrdinal() != items[j].PartOrdinal() {
			return items[i].PartOrdinal() < items[j].PartOrdinal()
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	info := &models.SeriesInfo{
		Key:   res.Key,
		Items: items,
	}
	for i, post := range items {
		if post.Id != postId {
			continue
		}
		if i > 0 {
			info.Prev = items[i-1]
		}
		if i < len(items)-1 {
			info.Next = items[i+1]
		}
		break
	}
	return info, nil
}
