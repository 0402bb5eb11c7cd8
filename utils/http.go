package utils

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// Returns a boolean value indicating whether the specified site supports HTTP/3
func IsHttp3Supported(site string) bool {
	switch site {
	case INKLINE:
		// the content API is commonly self-hosted behind plain HTTP/2
		return false
	case CLOUDINARY:
		return true
	case AUTH:
		return false
	default:
		panic(
			fmt.Errorf(
				"error %d, invalid site, %q in IsHttp3Supported",
				DEV_ERROR,
				site,
			),
		)
	}
}

// Returns the last part of the given URL string
func GetLastPartOfUrl(url string) string {
	removedParams := strings.SplitN(url, "?", 2)
	splittedUrl := strings.Split(removedParams[0], "/")
	return splittedUrl[len(splittedUrl)-1]
}

// Returns the path without the file extension
func RemoveExtFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// Reads and returns the response body in bytes and closes it
func ReadResBody(res *http.Response) ([]byte, error) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf(
			"error %d: failed to read response body from %s due to %v",
			RESPONSE_ERROR,
			res.Request.URL.String(),
			err,
		)
	}
	return body, nil
}
