package blog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// GetPosts lists posts matching the given filters. The search
// query matches title, excerpt, and content case-insensitively
// on the server.
func (c *Client) GetPosts(ctx context.Context, filters *PostFilters) ([]*models.Post, error) {
	if filters == nil {
		filters = &PostFilters{}
	}
	filters.ValidateArgs()

	var posts []*models.Post
	err := c.getJson(ctx, c.url("/posts"), filters.params(), &posts)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		post.Normalize()
	}
	sortPosts(posts, filters.Sort)
	return posts, nil
}

// older deployments ignore the sort parameter and always
// return newest first, so the requested order is applied
// again locally
func sortPosts(posts []*models.Post, sortOrder string) {
	switch sortOrder {
	case SortOldest:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})
	case SortTitleAz:
		sort.SliceStable(posts, func(i, j int) bool {
			return strings.ToLower(posts[i].Title) < strings.ToLower(posts[j].Title)
		})
	case SortTitleZa:
		sort.SliceStable(posts, func(i, j int) bool {
			return strings.ToLower(posts[i].Title) > strings.ToLower(posts[j].Title)
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// GetPost fetches a single post. A missing post surfaces as
// request.ErrNotFound.
func (c *Client) GetPost(ctx context.Context, postId int) (*models.Post, error) {
	var post models.Post
	err := c.getJson(ctx, c.url("/posts/%d", postId), nil, &post)
	if err != nil {
		return nil, err
	}
	post.Normalize()
	return &post, nil
}

// CreatePost validates the draft locally and publishes it.
// The server responds with the stored post including its new id.
func (c *Client) CreatePost(ctx context.Context, draft *Draft) (*models.Post, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	res, err := request.CallRequestWithJson(
		&request.RequestArgs{
			Method:      "POST",
			Url:         c.url("/posts"),
			Timeout:     30,
			Cookies:     c.Cookies,
			UserAgent:   c.UserAgent,
			CheckStatus: true,
			Http2:       true,
			Context:     ctx,
		},
		draft.payload(),
	)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := utils.LoadJsonFromResponse(res, &post); err != nil {
		return nil, err
	}
	post.Normalize()
	c.InvalidateMemo()
	return &post, nil
}

// UpdatePost applies a partial update to an existing post.
// Only the fields present in patch are changed.
func (c *Client) UpdatePost(ctx context.Context, postId int, patch map[string]any) (*models.Post, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf(
			"error %d: an empty patch would be a no-op",
			utils.DEV_ERROR,
		)
	}

	res, err := request.CallRequestWithJson(
		&request.RequestArgs{
			Method:      "PATCH",
			Url:         c.url("/posts/%d", postId),
			Timeout:     30,
			Cookies:     c.Cookies,
			UserAgent:   c.UserAgent,
			CheckStatus: true,
			Http2:       true,
			Context:     ctx,
		},
		patch,
	)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := utils.LoadJsonFromResponse(res, &post); err != nil {
		return nil, err
	}
	post.Normalize()
	c.InvalidateMemo()
	return &post, nil
}

// DeletePost removes a post. The server treats deletes as
// idempotent, so deleting a post that is already gone
// still succeeds.
func (c *Client) DeletePost(ctx context.Context, postId int) error {
	res, err := request.CallRequest(
		&request.RequestArgs{
			Method:      "DELETE",
			Url:         c.url("/posts/%d", postId),
			Timeout:     30,
			Cookies:     c.Cookies,
			UserAgent:   c.UserAgent,
			CheckStatus: true,
			Http2:       true,
			Context:     ctx,
		},
	)
	if err != nil {
		// already gone counts as deleted
		if err == request.ErrNotFound {
			c.InvalidateMemo()
			return nil
		}
		return err
	}
	res.Body.Close()
	c.InvalidateMemo()
	return nil
}

// BuildUpdateSection renders the timestamped addendum appended to a
// post's content by the append-update flow.
func BuildUpdateSection(updateHtml string, stamp time.Time) string {
	return fmt.Sprintf(
		`<hr/><section class="post-update"><h3>Update <span class="post-update__time">(%s)</span></h3>%s</section>`,
		stamp.Format("Jan 2, 2006 3:04 PM"),
		updateHtml,
	)
}

// AppendUpdate fetches the post and PATCHes its content with a
// timestamped update section added at the end.
func (c *Client) AppendUpdate(ctx context.Context, postId int, updateHtml string) (*models.Post, error) {
	if strings.TrimSpace(updateHtml) == "" {
		return nil, fmt.Errorf(
			"input error %d: the update has no content",
			utils.INPUT_ERROR,
		)
	}

	post, err := c.GetPost(ctx, postId)
	if err != nil {
		return nil, err
	}

	newContent := post.Content + BuildUpdateSection(updateHtml, time.Now())
	return c.UpdatePost(ctx, postId, map[string]any{
		"content": newContent,
	})
}
