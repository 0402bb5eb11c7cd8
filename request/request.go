package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/quic-go/quic-go/http3"
)

// ErrNotFound is returned when the server responds with a
// 404 status code for the requested resource.
var ErrNotFound = fmt.Errorf(
	"error %d: the requested resource was not found",
	utils.RESPONSE_ERROR,
)

// Get a new HTTP/2 or HTTP/3 client based on the request arguments
func GetHttpClient(reqArgs *RequestArgs) *http.Client {
	if reqArgs.Http2 {
		return &http.Client{
			Transport: &http.Transport{
				DisableCompression: reqArgs.DisableCompression,
			},
		}
	}
	return &http.Client{
		Transport: &http3.RoundTripper{
			DisableCompression: reqArgs.DisableCompression,
		},
	}
}

// add headers to the request
func AddHeaders(headers map[string]string, defaultUserAgent string, req *http.Request) {
	if len(headers) == 0 {
		return
	}

	if userAgent, ok := headers["User-Agent"]; !ok || userAgent == "" {
		headers["User-Agent"] = defaultUserAgent
	}

	for key, value := range headers {
		req.Header.Add(key, value)
	}
}

// add cookies to the request
func AddCookies(reqUrl string, cookies []*http.Cookie, req *http.Request) {
	if len(cookies) == 0 {
		return
	}

	for _, cookie := range cookies {
		if cookie.Domain == "" || strings.Contains(reqUrl, cookie.Domain) {
			req.AddCookie(cookie)
		}
	}
}

// add params to the request
func AddParams(params map[string]string, req *http.Request) {
	if len(params) == 0 {
		return
	}

	query := req.URL.Query()
	for key, value := range params {
		query.Add(key, value)
	}
	req.URL.RawQuery = query.Encode()
}

// send the request to the target URL and retries if the request was not successful
func sendRequest(req *http.Request, reqArgs *RequestArgs) (*http.Response, error) {
	AddCookies(reqArgs.Url, reqArgs.Cookies, req)
	AddHeaders(reqArgs.Headers, reqArgs.UserAgent, req)
	AddParams(reqArgs.Params, req)

	var err error
	var res *http.Response

	client := GetHttpClient(reqArgs)
	client.Timeout = time.Duration(reqArgs.Timeout) * time.Second
	for i := 1; i <= utils.RETRY_COUNTER; i++ {
		res, err = client.Do(req)
		if err == nil {
			if !reqArgs.CheckStatus {
				return res, nil
			} else if res.StatusCode >= 200 && res.StatusCode < 300 {
				return res, nil
			} else if res.StatusCode == 404 {
				// a missing resource will stay missing, no point retrying
				res.Body.Close()
				return nil, ErrNotFound
			}
			res.Body.Close()
		} else if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		} else {
			break
		}

		if i < utils.RETRY_COUNTER {
			time.Sleep(utils.GetRandomDelay())
		}
	}

	errMsg := fmt.Sprintf(
		"the request to %s failed after %d retries",
		reqArgs.Url,
		utils.RETRY_COUNTER,
	)
	if err != nil {
		err = fmt.Errorf("%s, more info => %v",
			errMsg,
			err,
		)
	} else if res != nil {
		err = fmt.Errorf("%s, status code => %s",
			errMsg,
			res.Status,
		)
	} else {
		err = errors.New(errMsg)
	}
	return nil, err
}

// CallRequest is used to make a request to a URL and return the response
//
// If the request fails, it will retry the request again up
// to the defined max retries in the constants.go in utils package
func CallRequest(reqArgs *RequestArgs) (*http.Response, error) {
	reqArgs.ValidateArgs()
	req, err := http.NewRequestWithContext(
		reqArgs.Context,
		reqArgs.Method,
		reqArgs.Url,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"error %d: unable to create a new request, more info => %v",
			utils.DEV_ERROR,
			err,
		)
	}

	return sendRequest(req, reqArgs)
}

// Sends a request with the given form data
func CallRequestWithData(reqArgs *RequestArgs, data map[string]string) (*http.Response, error) {
	reqArgs.ValidateArgs()
	form := url.Values{}
	for key, value := range data {
		form.Add(key, value)
	}
	if len(data) > 0 {
		reqArgs.Headers["Content-Type"] = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(
		reqArgs.Context,
		reqArgs.Method,
		reqArgs.Url,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}

	return sendRequest(req, reqArgs)
}

// Sends a request with the given payload marshalled to JSON
func CallRequestWithJson(reqArgs *RequestArgs, payload any) (*http.Response, error) {
	reqArgs.ValidateArgs()
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf(
			"error %d: unable to marshal the payload to JSON, more info => %v",
			utils.JSON_ERROR,
			err,
		)
	}
	reqArgs.Headers["Content-Type"] = "application/json"

	req, err := http.NewRequestWithContext(
		reqArgs.Context,
		reqArgs.Method,
		reqArgs.Url,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}

	return sendRequest(req, reqArgs)
}

// Sends a request with the given body and content type,
// e.g. a multipart form body for file uploads
func CallRequestWithBody(reqArgs *RequestArgs, contentType string, body io.Reader) (*http.Response, error) {
	reqArgs.ValidateArgs()
	reqArgs.Headers["Content-Type"] = contentType

	req, err := http.NewRequestWithContext(
		reqArgs.Context,
		reqArgs.Method,
		reqArgs.Url,
		body,
	)
	if err != nil {
		return nil, err
	}

	return sendRequest(req, reqArgs)
}

// Check for active internet connection (To be used at the start of the program)
func CheckInternetConnection() {
	_, err := CallRequest(
		&RequestArgs{
			Url:         "https://www.google.com",
			Method:      "HEAD",
			Timeout:     10,
			CheckStatus: false,
			Http3:       true,
		},
	)
	if err != nil {
		color.Red(
			fmt.Sprintf(
				"error %d: unable to connect to the internet, more info => %v",
				utils.CONNECTION_ERROR,
				err,
			),
		)
		os.Exit(1)
	}
}

type versionInfo struct {
	Major int
	Minor int
	Patch int
}

func processVer(apiResVer string) (*versionInfo, error) {
	apiResVer = strings.TrimPrefix(apiResVer, "v")
	ver := strings.Split(apiResVer, ".")
	if len(ver) != 3 {
		return nil, fmt.Errorf(
			"github error %d: unable to process the latest version, %q",
			utils.DEV_ERROR,
			apiResVer,
		)
	}

	verSlice := make([]int, 3)
	for i, v := range ver {
		verInt, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf(
				"github error %d: unable to process the latest version, %q",
				utils.DEV_ERROR,
				apiResVer,
			)
		}
		verSlice[i] = verInt
	}

	return &versionInfo{
		Major: verSlice[0],
		Minor: verSlice[1],
		Patch: verSlice[2],
	}, nil
}

type GithubApiRes struct {
	TagName string `json:"tag_name"`
	HtmlUrl string `json:"html_url"`
}

// check for the latest version of the program
func CheckVer() error {
	progress := spinner.New(
		spinner.REQ_SPINNER,
		"fgHiYellow",
		"Checking for the latest version...",
		"",
		"Failed to check for the latest version, please refer to the logs for more details...",
		0,
	)
	url := "https://api.github.com/repos/inklinehq/Inkline-CLI/releases/latest"
	res, err := CallRequest(
		&RequestArgs{
			Url:         url,
			Method:      "GET",
			Timeout:     5,
			CheckStatus: false,
			Http3:       false,
			Http2:       true,
		},
	)
	progress.Start()
	if err != nil || res.StatusCode != 200 {
		errMsg := fmt.Sprintf(
			"github error %d: unable to check for the latest version",
			utils.CONNECTION_ERROR,
		)
		if err != nil {
			errMsg += fmt.Sprintf(", more info => %v", err)
		}

		progress.Stop(true)
		return errors.New(errMsg)
	}

	var apiRes GithubApiRes
	if err := utils.LoadJsonFromResponse(res, &apiRes); err != nil {
		errMsg := fmt.Sprintf(
			"github error %d: unable to marshal the response from the API into an interface",
			utils.UNEXPECTED_ERROR,
		)
		progress.Stop(true)
		return errors.New(errMsg)
	}

	latestVer, err := processVer(apiRes.TagName)
	if err != nil {
		errMsg := fmt.Sprintf(
			"github error %d: unable to process the latest version",
			utils.UNEXPECTED_ERROR,
		)
		progress.Stop(true)
		return errors.New(errMsg)
	}

	programVer, err := processVer(utils.VERSION)
	if err != nil {
		errMsg := fmt.Sprintf(
			"error %d: unable to process the program version",
			utils.DEV_ERROR,
		)
		panic(errMsg)
	}

	var outdated bool
	if latestVer.Major > programVer.Major {
		outdated = true
	} else if latestVer.Major == programVer.Major {
		if latestVer.Minor > programVer.Minor {
			outdated = true
		} else if latestVer.Minor == programVer.Minor {
			if latestVer.Patch > programVer.Patch {
				outdated = true
			}
		}
	}

	if outdated {
		progress.ErrMsg = fmt.Sprintf(
			"Warning: this program is outdated, the latest version %q is available at %s",
			apiRes.TagName,
			apiRes.HtmlUrl,
		)
	} else {
		progress.SuccessMsg = "This program is up to date!"
	}
	progress.Stop(outdated)
	return nil
}
