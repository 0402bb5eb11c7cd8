// Package identity handles the signed-in user: who they are, the
// session cookie that proves it, and the browser-driven sign-in flow.
package identity

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// SESSION_COOKIE_NAME is the cookie the identity provider sets
// once the user has signed in.
const SESSION_COOKIE_NAME = "__session"

// User is the identity provider's view of the signed-in user.
// The role claim is used purely to decide which authoring
// commands to offer, the server enforces the real permissions.
type User struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	ImageUrl string `json:"image_url"`
	Role     string `json:"role"`
}

// DisplayName resolves the name shown as the author of posts
// and comments.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return "anonymous"
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	case u.Email != "":
		return u.Email
	default:
		return "anonymous"
	}
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// GetSessionCookie builds the session cookie for the given
// identity provider origin.
func GetSessionCookie(sessionValue, authUrl string) *http.Cookie {
	if sessionValue == "" {
		return &http.Cookie{}
	}

	domain := ""
	if parsed, err := url.Parse(authUrl); err == nil {
		domain = parsed.Hostname()
	}

	return &http.Cookie{
		Name:     SESSION_COOKIE_NAME,
		Value:    sessionValue,
		Domain:   domain,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
		HttpOnly: true,
	}
}

// VerifySessionCookie asks the identity provider who the cookie
// belongs to. An invalid or expired cookie returns an error rather
// than a user.
func VerifySessionCookie(cookie *http.Cookie, authUrl, userAgent string) (*User, error) {
	if cookie == nil || cookie.Value == "" {
		return nil, fmt.Errorf(
			"auth error %d: you are not signed in",
			utils.AUTH_ERROR,
		)
	}

	useHttp3 := utils.IsHttp3Supported(utils.AUTH)
	res, err := request.CallRequest(
		&request.RequestArgs{
			Method:      "GET",
			Url:         authUrl + "/me",
			Timeout:     15,
			Cookies:     []*http.Cookie{cookie},
			UserAgent:   userAgent,
			CheckStatus: false,
			Http2:       !useHttp3,
			Http3:       useHttp3,
		},
	)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != 200 {
		res.Body.Close()
		return nil, fmt.Errorf(
			"auth error %d: your session is no longer valid, please sign in again",
			utils.AUTH_ERROR,
		)
	}

	var user User
	if err := utils.LoadJsonFromResponse(res, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
