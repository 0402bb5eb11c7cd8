package textparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePostsTextFile(t *testing.T) {
	textFilePath := filepath.Join(t.TempDir(), "posts.txt")
	content := "12\n" +
		"https://blog.example.com/post/34\n" +
		"https://blog.example.com/posts/56/\n" +
		"\n" +
		"not-a-post\n" +
		"12\n"
	require.NoError(t, os.WriteFile(textFilePath, []byte(content), 0644))

	postIds := ParsePostsTextFile(textFilePath)
	assert.Equal(t, []int{12, 34, 56}, postIds)
}
