// Package blog is the client for the content API that owns
// posts, comments, and the curated front page.
package blog

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// Client talks to one content API deployment.
//
// Read responses are memoised for a short while so commands that
// fetch the same listing twice in one run only pay for it once.
type Client struct {
	BaseUrl   string
	UserAgent string
	Cookies   []*http.Cookie

	memo *gocache.Cache
}

func NewClient(baseUrl, userAgent string, cookies []*http.Cookie) *Client {
	baseUrl = strings.TrimSuffix(baseUrl, "/")
	if baseUrl == "" {
		panic(
			fmt.Errorf(
				"error %d: the content API base URL cannot be empty",
				utils.DEV_ERROR,
			),
		)
	}
	return &Client{
		BaseUrl:   baseUrl,
		UserAgent: userAgent,
		Cookies:   cookies,
		memo:      gocache.New(30*time.Second, time.Minute),
	}
}

func memoKey(url string, params map[string]string) string {
	if len(params) == 0 {
		return url
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(url)
	for _, key := range keys {
		sb.WriteString("|")
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(params[key])
	}
	return sb.String()
}

// getJson fetches url into out, memoising the raw body.
func (c *Client) getJson(ctx context.Context, url string, params map[string]string, out any) error {
	key := memoKey(url, params)
	if cached, ok := c.memo.Get(key); ok {
		return utils.LoadJsonFromBytes(cached.([]byte), out)
	}

	useHttp3 := utils.IsHttp3Supported(utils.INKLINE)
	res, err := request.CallRequest(
		&request.RequestArgs{
			Method:      "GET",
			Url:         url,
			Params:      params,
			Cookies:     c.Cookies,
			UserAgent:   c.UserAgent,
			CheckStatus: true,
			Http2:       !useHttp3,
			Http3:       useHttp3,
			Context:     ctx,
		},
	)
	if err != nil {
		return err
	}

	body, err := utils.ReadResBody(res)
	if err != nil {
		return err
	}

	c.memo.SetDefault(key, body)
	return utils.LoadJsonFromBytes(body, out)
}

// InvalidateMemo drops all memoised read responses. Called after
// every mutation so subsequent reads see the server's new state.
func (c *Client) InvalidateMemo() {
	c.memo.Flush()
}

func (c *Client) url(format string, a ...any) string {
	return c.BaseUrl + fmt.Sprintf(format, a...)
}
