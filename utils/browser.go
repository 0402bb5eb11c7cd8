package utils

import (
	"context"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

func SetChromedpAllocCookie(cookie *http.Cookie) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var expr cdp.TimeSinceEpoch
		if cookie.Expires.IsZero() {
			expr = cdp.TimeSinceEpoch(time.Now().Add(365 * 24 * time.Hour))
		} else {
			expr = cdp.TimeSinceEpoch(cookie.Expires)
		}

		return network.SetCookie(cookie.Name, cookie.Value).
			WithExpires(&expr).
			WithDomain(cookie.Domain).
			WithPath(cookie.Path).
			WithHTTPOnly(cookie.HttpOnly).
			WithSecure(cookie.Secure).
			Do(ctx)
	})
}

func SetChromedpAllocCookies(cookies []*http.Cookie) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, cookie := range cookies {
			if err := SetChromedpAllocCookie(cookie).Do(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetChromedpCookies reads the browser's cookies for the current page.
func GetChromedpCookies(out *[]*http.Cookie) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		cdpCookies, err := network.GetCookies().Do(ctx)
		if err != nil {
			return err
		}

		cookies := make([]*http.Cookie, 0, len(cdpCookies))
		for _, c := range cdpCookies {
			cookies = append(cookies, &http.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  time.Unix(int64(c.Expires), 0),
				Secure:   c.Secure,
				HttpOnly: c.HTTPOnly,
			})
		}
		*out = cookies
		return nil
	})
}

// GetDefaultChromedpAlloc starts a visible browser so the user can
// interact with pages that need a human, like the sign-in flow.
func GetDefaultChromedpAlloc(userAgent string) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.Flag("headless", false),
	)
	return chromedp.NewExecAllocator(context.Background(), opts...)
}

func ExecuteChromedpActions(allocCtx context.Context, allocCancelFn context.CancelFunc, actions ...chromedp.Action) error {
	if allocCtx == nil {
		allocCtx = context.Background()
	}

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	return chromedp.Run(taskCtx, actions...)
}
