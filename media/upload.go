package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// UploadedAsset is the media host's record of an uploaded file.
// DeleteToken is short-lived and may be empty, so deleting by
// token is always best-effort.
type UploadedAsset struct {
	SecureUrl    string `json:"secure_url"`
	PublicId     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Bytes        int64  `json:"bytes"`
	Format       string `json:"format"`
	DeleteToken  string `json:"delete_token"`
}

// Uploader uploads files to the media host using an
// unsigned upload preset.
type Uploader struct {
	CloudName    string
	UploadPreset string
	UserAgent    string

	// BaseUrl overrides the media host's API origin, mainly for tests.
	BaseUrl string
}

func NewUploader(cloudName, uploadPreset, userAgent string) *Uploader {
	if cloudName == "" || uploadPreset == "" {
		panic(
			fmt.Errorf(
				"error %d: uploader requires a cloud name and an upload preset",
				utils.DEV_ERROR,
			),
		)
	}
	return &Uploader{
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		UserAgent:    userAgent,
	}
}

func (u *Uploader) apiUrl(endpoint, resourceType string) string {
	baseUrl := u.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://api.cloudinary.com"
	}
	return fmt.Sprintf(
		"%s/v1_1/%s/%s/%s",
		baseUrl,
		u.CloudName,
		resourceType,
		endpoint,
	)
}

var videoUploadExts = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".ogg":  {},
	".mov":  {},
	".mkv":  {},
}

// ResourceTypeFor maps a filename to the media host's
// upload resource type.
func ResourceTypeFor(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if _, ok := videoUploadExts[ext]; ok {
		return "video"
	}
	return "image"
}

func buildUploadBody(filePath, uploadPreset string) (*bytes.Buffer, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf(
			"upload error %d: unable to open %s, more info => %v",
			utils.OS_ERROR,
			filePath,
			err,
		)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf(
			"upload error %d: unable to read %s, more info => %v",
			utils.OS_ERROR,
			filePath,
			err,
		)
	}
	if err := writer.WriteField("upload_preset", uploadPreset); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// UploadFile uploads the file at filePath and returns the
// media host's record of the new asset.
func (u *Uploader) UploadFile(ctx context.Context, filePath string) (*UploadedAsset, error) {
	body, contentType, err := buildUploadBody(filePath, u.UploadPreset)
	if err != nil {
		return nil, err
	}

	resourceType := ResourceTypeFor(filePath)
	res, err := request.CallRequestWithBody(
		&request.RequestArgs{
			Url:         u.apiUrl("upload", resourceType),
			Method:      "POST",
			Timeout:     utils.DOWNLOAD_TIMEOUT,
			UserAgent:   u.UserAgent,
			CheckStatus: true,
			Context:     ctx,
		},
		contentType,
		body,
	)
	if err != nil {
		if err == context.Canceled {
			return nil, err
		}
		return nil, fmt.Errorf(
			"upload error %d: unable to upload %s, more info => %v",
			utils.UPLOAD_ERROR,
			filePath,
			err,
		)
	}
	defer res.Body.Close()

	var asset UploadedAsset
	if err := utils.LoadJsonFromResponse(res, &asset); err != nil {
		return nil, err
	}
	if asset.SecureUrl == "" {
		return nil, fmt.Errorf(
			"upload error %d: the media host did not return a delivery URL for %s",
			utils.UPLOAD_ERROR,
			filePath,
		)
	}
	return &asset, nil
}

// DeleteByToken deletes an uploaded asset using its short-lived
// delete token. The token expires quickly so callers should treat
// a failure here as routine.
func (u *Uploader) DeleteByToken(ctx context.Context, asset *UploadedAsset) error {
	if asset == nil || asset.DeleteToken == "" {
		return nil
	}

	resourceType := asset.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}
	res, err := request.CallRequestWithData(
		&request.RequestArgs{
			Url:         u.apiUrl("delete_by_token", resourceType),
			Method:      "POST",
			Timeout:     15,
			UserAgent:   u.UserAgent,
			CheckStatus: true,
			Context:     ctx,
		},
		map[string]string{
			"token": asset.DeleteToken,
		},
	)
	if err != nil {
		return fmt.Errorf(
			"upload error %d: unable to delete asset %s by token, more info => %v",
			utils.UPLOAD_ERROR,
			asset.PublicId,
			err,
		)
	}
	res.Body.Close()
	return nil
}
