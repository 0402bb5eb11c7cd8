package request

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/inklinehq/Inkline-CLI/utils"
)

// RequestHandler is the function that sends the actual HTTP request.
// Mainly used so that tests can inject their own handler.
type RequestHandler func(reqArgs *RequestArgs) (*http.Response, error)

type RequestArgs struct {
	// Main Request Options
	Method  string
	Url     string
	Timeout int

	// Additional Request Options
	Headers            map[string]string
	Params             map[string]string
	Cookies            []*http.Cookie
	UserAgent          string
	DisableCompression bool

	// HTTP/2 and HTTP/3 Options
	Http2 bool
	Http3 bool

	// Check status will check the status code of the response for 200 OK.
	// If the status code is not 200 OK, it will retry several times and
	// if the status code is still not 200 OK, it will return an error.
	// Otherwise, it will return the response regardless of the status code.
	//
	// A 404 response is never retried and returns ErrNotFound instead.
	CheckStatus bool

	// Context is used to cancel the request if needed.
	// E.g. if the user presses Ctrl+C, we can use context.WithCancel(context.Background())
	Context context.Context

	// RequestHandler is the function used to send the request.
	// Defaults to CallRequest.
	RequestHandler RequestHandler
}

// Domains that are known to support HTTP/3.
// Everything else falls back to HTTP/2.
var HTTP3_SUPPORT_ARR = [...]string{
	"https://res.cloudinary.com",
	"https://api.cloudinary.com",

	"https://www.google.com",
}

// ValidateArgs validates the arguments of the request
//
// Will panic if the arguments are invalid as this is a developer error
func (args *RequestArgs) ValidateArgs() {
	if args.Method == "" {
		panic(
			fmt.Errorf(
				"error %d: method cannot be empty",
				utils.DEV_ERROR,
			),
		)
	}

	if args.Headers == nil {
		args.Headers = make(map[string]string)
	}

	if args.Params == nil {
		args.Params = make(map[string]string)
	}

	if args.Cookies == nil {
		args.Cookies = make([]*http.Cookie, 0)
	}

	if args.UserAgent == "" {
		args.UserAgent = utils.USER_AGENT
	}

	if args.Context == nil {
		args.Context = context.Background()
	}

	if args.RequestHandler == nil {
		args.RequestHandler = CallRequest
	}

	if !args.Http2 && !args.Http3 {
		// if http2 and http3 are not enabled,
		// check if the URL supports HTTP/3 first
		// before falling back to the default HTTP/2.
		for _, domain := range HTTP3_SUPPORT_ARR {
			if strings.HasPrefix(args.Url, domain) {
				args.Http3 = true
				break
			}
		}
		if !args.Http3 {
			args.Http2 = true
		}
	} else if args.Http2 && args.Http3 {
		panic(
			fmt.Errorf(
				"error %d: http2 and http3 cannot be enabled at the same time",
				utils.DEV_ERROR,
			),
		)
	}

	if args.Url == "" {
		panic(
			fmt.Errorf(
				"error %d: url cannot be empty",
				utils.DEV_ERROR,
			),
		)
	}

	if args.Timeout < 0 {
		panic(
			fmt.Errorf(
				"error %d: timeout cannot be negative",
				utils.DEV_ERROR,
			),
		)
	} else if args.Timeout == 0 {
		args.Timeout = 15
	}
}
