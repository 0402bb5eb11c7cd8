package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Read the response body and unmarshal it into the given pointer
func LoadJsonFromResponse(res *http.Response, format any) error {
	body, err := ReadResBody(res)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, format); err != nil {
		return fmt.Errorf(
			"error %d: failed to unmarshal json response from %s due to %v\nBody: %s",
			RESPONSE_ERROR,
			res.Request.URL.String(),
			err,
			string(body),
		)
	}
	return nil
}

func LoadJsonFromBytes(body []byte, format any) error {
	if err := json.Unmarshal(body, format); err != nil {
		return fmt.Errorf(
			"error %d: failed to unmarshal json due to %v\nBody: %s",
			JSON_ERROR,
			err,
			string(body),
		)
	}
	return nil
}
