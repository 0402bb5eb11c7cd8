package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/utils"
)

type quotesResponse struct {
	Quotes []*models.Quote `json:"quotes"`
}

// GetQuotes fetches market quotes for the given ticker symbols.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	symbols = utils.RemoveSliceDuplicates(symbols)
	if len(symbols) == 0 {
		return nil, fmt.Errorf(
			"input error %d: at least one ticker symbol is required",
			utils.INPUT_ERROR,
		)
	}

	var res quotesResponse
	err := c.getJson(
		ctx,
		c.url("/api/quotes"),
		map[string]string{
			"symbols": strings.Join(symbols, ","),
		},
		&res,
	)
	if err != nil {
		return nil, err
	}
	return res.Quotes, nil
}

// GetFinanceDigest fetches the curated headline layout for
// the news screen.
func (c *Client) GetFinanceDigest(ctx context.Context) (*models.NewsDigest, error) {
	var digest models.NewsDigest
	err := c.getJson(ctx, c.url("/rss/finance-home"), nil, &digest)
	if err != nil {
		return nil, err
	}
	return &digest, nil
}
