package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// GetComments lists a post's comments, newest first.
func (c *Client) GetComments(ctx context.Context, postId int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := c.getJson(ctx, c.url("/posts/%d/comments", postId), nil, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment submits a comment and returns the stored comment
// with its server-assigned id. The body is validated locally first
// so an empty comment never costs a request.
func (c *Client) CreateComment(ctx context.Context, postId int, author, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf(
			"input error %d: a comment needs a body",
			utils.INPUT_ERROR,
		)
	}
	if author == "" {
		author = "anonymous"
	}

	res, err := request.CallRequestWithJson(
		&request.RequestArgs{
			Method:      "POST",
			Url:         c.url("/posts/%d/comments", postId),
			Timeout:     30,
			Cookies:     c.Cookies,
			UserAgent:   c.UserAgent,
			CheckStatus: true,
			Http2:       true,
			Context:     ctx,
		},
		map[string]any{
			"post_id": postId,
			"author":  author,
			"body":    body,
		},
	)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := utils.LoadJsonFromResponse(res, &comment); err != nil {
		return nil, err
	}
	c.InvalidateMemo()
	return &comment, nil
}
