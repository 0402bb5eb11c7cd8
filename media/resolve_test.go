package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVideo(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected VideoInfo
	}{
		{
			name:     "watch url",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: VideoInfo{Kind: VideoYouTube, Id: "dQw4w9WgXcQ"},
		},
		{
			name:     "watch url with extra params",
			url:      "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42",
			expected: VideoInfo{Kind: VideoYouTube, Id: "dQw4w9WgXcQ"},
		},
		{
			name:     "short link",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: VideoInfo{Kind: VideoYouTube, Id: "dQw4w9WgXcQ"},
		},
		{
			name:     "short link with timestamp",
			url:      "https://youtu.be/dQw4w9WgXcQ?t=10",
			expected: VideoInfo{Kind: VideoYouTube, Id: "dQw4w9WgXcQ"},
		},
		{
			name:     "shorts url",
			url:      "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			expected: VideoInfo{Kind: VideoYouTube, Id: "dQw4w9WgXcQ"},
		},
		{
			name:     "embed url",
			url:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expected: VideoInfo{Kind: VideoYouTube, Id: "dQw4w9WgXcQ"},
		},
		{
			name:     "youtube id of the wrong length",
			url:      "https://youtu.be/tooshort",
			expected: VideoInfo{Kind: VideoUnknown},
		},
		{
			name:     "vimeo url",
			url:      "https://vimeo.com/76979871",
			expected: VideoInfo{Kind: VideoVimeo, Id: "76979871"},
		},
		{
			name:     "vimeo url with query",
			url:      "https://vimeo.com/76979871?share=copy",
			expected: VideoInfo{Kind: VideoVimeo, Id: "76979871"},
		},
		{
			name:     "direct mp4",
			url:      "https://example.com/clips/intro.mp4",
			expected: VideoInfo{Kind: VideoDirect},
		},
		{
			name:     "direct file with query and uppercase extension",
			url:      "https://example.com/clips/intro.WEBM?dl=1",
			expected: VideoInfo{Kind: VideoDirect},
		},
		{
			name:     "unrelated url",
			url:      "https://example.com/about",
			expected: VideoInfo{Kind: VideoUnknown},
		},
		{
			name:     "empty string",
			url:      "",
			expected: VideoInfo{Kind: VideoUnknown},
		},
		{
			name:     "garbage input",
			url:      "::not a url::",
			expected: VideoInfo{Kind: VideoUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyVideo(tt.url))
		})
	}
}

func TestEmbedUrl(t *testing.T) {
	assert.Equal(
		t,
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		EmbedUrl("https://youtu.be/dQw4w9WgXcQ"),
	)
	assert.Equal(
		t,
		"https://player.vimeo.com/video/76979871",
		EmbedUrl("https://vimeo.com/76979871"),
	)
	assert.Equal(
		t,
		"https://example.com/clips/intro.mp4",
		EmbedUrl("https://example.com/clips/intro.mp4"),
	)
}

func TestTransformUrl(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		opts     TransformOptions
		expected string
	}{
		{
			name:     "inline defaults",
			url:      "https://res.cloudinary.com/demo/image/upload/v123/sample.jpg",
			opts:     DefaultTransform(),
			expected: "https://res.cloudinary.com/demo/image/upload/c_limit,w_900,q_80,f_auto,dpr_auto/v123/sample.jpg",
		},
		{
			name:     "cover variant",
			url:      "https://res.cloudinary.com/demo/image/upload/v123/sample.jpg",
			opts:     CoverTransform(),
			expected: "https://res.cloudinary.com/demo/image/upload/c_limit,w_1600,q_85,f_auto,dpr_auto/v123/sample.jpg",
		},
		{
			name:     "already transformed",
			url:      "https://res.cloudinary.com/demo/image/upload/c_limit,w_900/v123/sample.jpg",
			opts:     DefaultTransform(),
			expected: "https://res.cloudinary.com/demo/image/upload/c_limit,w_900/v123/sample.jpg",
		},
		{
			name:     "single transform token without comma",
			url:      "https://res.cloudinary.com/demo/image/upload/w_500/v123/sample.jpg",
			opts:     DefaultTransform(),
			expected: "https://res.cloudinary.com/demo/image/upload/w_500/v123/sample.jpg",
		},
		{
			name:     "other host untouched",
			url:      "https://example.com/image/upload/v123/sample.jpg",
			opts:     DefaultTransform(),
			expected: "https://example.com/image/upload/v123/sample.jpg",
		},
		{
			name:     "no upload segment",
			url:      "https://res.cloudinary.com/demo/image/fetch/v123/sample.jpg",
			opts:     DefaultTransform(),
			expected: "https://res.cloudinary.com/demo/image/fetch/v123/sample.jpg",
		},
		{
			name:     "unparseable input untouched",
			url:      "not a url at all",
			opts:     DefaultTransform(),
			expected: "not a url at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TransformUrl(tt.url, tt.opts))
		})
	}
}

func TestTransformUrlIsIdempotent(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v123/sample.jpg"
	once := TransformUrl(url, DefaultTransform())
	twice := TransformUrl(once, DefaultTransform())
	assert.Equal(t, once, twice)
}

func TestTransformOptionsSegment(t *testing.T) {
	opts := TransformOptions{
		Width:   400,
		Height:  300,
		Quality: 70,
		Crop:    "fill",
		Format:  "auto",
		Dpr:     "2.0",
		Gravity: "face",
		Aspect:  "16:9",
		Flags:   "progressive",
	}
	assert.Equal(
		t,
		"c_fill,w_400,h_300,g_face,ar_16:9,q_70,f_auto,dpr_2.0,fl_progressive",
		opts.segment(),
	)
}
