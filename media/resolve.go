// Package media classifies embeddable URLs, builds delivery-transform
// URLs, and uploads assets to the media host.
package media

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

type VideoKind string

const (
	VideoYouTube VideoKind = "youtube"
	VideoVimeo   VideoKind = "vimeo"
	VideoDirect  VideoKind = "direct"
	VideoUnknown VideoKind = "unknown"
)

// VideoInfo is the result of classifying a URL for embedding.
// Id is the provider's video id for youtube and vimeo,
// and empty otherwise.
type VideoInfo struct {
	Kind VideoKind
	Id   string
}

var (
	// YouTube video ids are always exactly 11 characters
	youtubeUrlRegex = regexp.MustCompile(
		`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/shorts/|youtube\.com/embed/)([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`,
	)
	vimeoUrlRegex = regexp.MustCompile(
		`vimeo\.com/(\d+)(?:[^\d]|$)`,
	)
)

var directVideoExts = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".ogg":  {},
}

// ClassifyVideo determines how the given URL should be embedded.
// Providers are tested in order: YouTube, Vimeo, then direct video
// files. Anything unparseable or unrecognized is VideoUnknown,
// never an error.
func ClassifyVideo(rawUrl string) VideoInfo {
	rawUrl = strings.TrimSpace(rawUrl)
	if rawUrl == "" {
		return VideoInfo{Kind: VideoUnknown}
	}

	if matches := youtubeUrlRegex.FindStringSubmatch(rawUrl); matches != nil {
		return VideoInfo{
			Kind: VideoYouTube,
			Id:   matches[1],
		}
	}

	if matches := vimeoUrlRegex.FindStringSubmatch(rawUrl); matches != nil {
		return VideoInfo{
			Kind: VideoVimeo,
			Id:   matches[1],
		}
	}

	parsedUrl, err := url.Parse(rawUrl)
	if err == nil {
		ext := strings.ToLower(path.Ext(parsedUrl.Path))
		if _, ok := directVideoExts[ext]; ok {
			return VideoInfo{Kind: VideoDirect}
		}
	}

	return VideoInfo{Kind: VideoUnknown}
}

// EmbedUrl returns the player URL for a classified video.
// Direct files play from their own URL and unknown URLs
// have no player, so both return the input unchanged.
func EmbedUrl(rawUrl string) string {
	info := ClassifyVideo(rawUrl)
	switch info.Kind {
	case VideoYouTube:
		return fmt.Sprintf("https://www.youtube.com/embed/%s", info.Id)
	case VideoVimeo:
		return fmt.Sprintf("https://player.vimeo.com/video/%s", info.Id)
	default:
		return rawUrl
	}
}

// TransformOptions are the delivery transform parameters
// understood by the media host's URL convention.
type TransformOptions struct {
	Width   int
	Height  int
	Quality int

	// Crop defaults to "limit" which never upscales
	Crop    string
	Format  string
	Dpr     string
	Gravity string
	Aspect  string
	Flags   string
}

// DefaultTransform returns the inline delivery transform
// used for images embedded in post content.
func DefaultTransform() TransformOptions {
	return TransformOptions{
		Width:   900,
		Quality: 80,
		Crop:    "limit",
		Format:  "auto",
		Dpr:     "auto",
	}
}

// CoverTransform returns the wider delivery transform
// used for cover images.
func CoverTransform() TransformOptions {
	return TransformOptions{
		Width:   1600,
		Quality: 85,
		Crop:    "limit",
		Format:  "auto",
		Dpr:     "auto",
	}
}

func (opts TransformOptions) segment() string {
	var parts []string
	if opts.Crop != "" {
		parts = append(parts, "c_"+opts.Crop)
	}
	if opts.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", opts.Width))
	}
	if opts.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", opts.Height))
	}
	if opts.Gravity != "" {
		parts = append(parts, "g_"+opts.Gravity)
	}
	if opts.Aspect != "" {
		parts = append(parts, "ar_"+opts.Aspect)
	}
	if opts.Quality > 0 {
		parts = append(parts, fmt.Sprintf("q_%d", opts.Quality))
	}
	if opts.Format != "" {
		parts = append(parts, "f_"+opts.Format)
	}
	if opts.Dpr != "" {
		parts = append(parts, "dpr_"+opts.Dpr)
	}
	if opts.Flags != "" {
		parts = append(parts, "fl_"+opts.Flags)
	}
	return strings.Join(parts, ",")
}

var transformTokenRegex = regexp.MustCompile(`^(?:c_|w_|h_|q_|f_|dpr_|g_|ar_|fl_)`)

// TransformUrl inserts the given delivery transform into a media host
// URL. The operation is idempotent: a URL that already carries a
// transform segment after the upload path marker is returned unchanged
// so transforms never stack. URLs on other hosts and unparseable
// input are also returned unchanged.
func TransformUrl(rawUrl string, opts TransformOptions) string {
	parsedUrl, err := url.Parse(rawUrl)
	if err != nil || parsedUrl.Host == "" {
		return rawUrl
	}
	if parsedUrl.Host != "res.cloudinary.com" {
		return rawUrl
	}

	pathSegments := strings.Split(parsedUrl.Path, "/")
	uploadIdx := -1
	for i, segment := range pathSegments {
		if segment == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx == len(pathSegments)-1 {
		return rawUrl
	}

	nextSegment := pathSegments[uploadIdx+1]
	if strings.Contains(nextSegment, ",") || transformTokenRegex.MatchString(nextSegment) {
		// already transformed
		return rawUrl
	}

	transform := opts.segment()
	if transform == "" {
		return rawUrl
	}

	newSegments := make([]string, 0, len(pathSegments)+1)
	newSegments = append(newSegments, pathSegments[:uploadIdx+1]...)
	newSegments = append(newSegments, transform)
	newSegments = append(newSegments, pathSegments[uploadIdx+1:]...)
	parsedUrl.Path = strings.Join(newSegments, "/")
	return parsedUrl.String()
}
