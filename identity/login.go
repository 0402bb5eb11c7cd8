package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// how long the user gets to finish signing in before the
// browser window is torn down
const loginTimeout = 5 * time.Minute

// waitForSessionCookie polls the browser until the identity
// provider has set the session cookie.
func waitForSessionCookie(out *http.Cookie) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				var cookies []*http.Cookie
				if err := utils.GetChromedpCookies(&cookies).Do(ctx); err != nil {
					return err
				}
				for _, cookie := range cookies {
					if cookie.Name == SESSION_COOKIE_NAME && cookie.Value != "" {
						*out = *cookie
						return nil
					}
				}
			}
		}
	})
}

// LoginWithBrowser opens a browser window on the identity provider's
// sign-in page and waits for the user to complete the flow. The
// captured session cookie is verified and persisted.
func LoginWithBrowser(authUrl, userAgent string) (*Session, error) {
	var captured http.Cookie
	actions := []chromedp.Action{
		chromedp.Navigate(authUrl + "/sign-in"),
		waitForSessionCookie(&captured),
	}

	allocCtx, cancel := utils.GetDefaultChromedpAlloc(userAgent)
	defer cancel()

	allocCtx, cancel = context.WithTimeout(allocCtx, loginTimeout)
	progress := spinner.New(
		spinner.REQ_SPINNER,
		"fgHiYellow",
		"Waiting for you to sign in from the browser window...",
		"Successfully signed in!",
		"Sign-in did not complete, please try again.",
		0,
	)
	progress.Start()
	if err := utils.ExecuteChromedpActions(allocCtx, cancel, actions...); err != nil {
		progress.Stop(true)
		return nil, fmt.Errorf(
			"auth error %d: sign-in did not complete, more info => %v",
			utils.AUTH_ERROR,
			err,
		)
	}

	user, err := VerifySessionCookie(&captured, authUrl, userAgent)
	if err != nil {
		progress.Stop(true)
		return nil, err
	}

	session := &Session{
		SessionValue: captured.Value,
		User:         user,
	}
	if err := SaveSession(session); err != nil {
		progress.Stop(true)
		return nil, err
	}
	progress.Stop(false)
	return session, nil
}
