package textparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/utils"
)

var (
	POST_URL_REGEX = regexp.MustCompile(
		`^https?://[^/]+/posts?/(?P<postId>[1-9]\d*)/?$`,
	)
	POST_URL_REGEX_POST_ID_INDEX = POST_URL_REGEX.SubexpIndex("postId")
	POST_ID_REGEX                = regexp.MustCompile(`^[1-9]\d*$`)
)

// ParsePostsTextFile parses the text file at the given path and returns a slice of post IDs.
//
// Each line is either a bare post ID or a post URL. Blank lines are skipped
// and unrecognised lines are reported but do not abort the parse.
func ParsePostsTextFile(textFilePath string) []int {
	f, reader := openTextFile(textFilePath)
	defer f.Close()

	var postIds []int
	for {
		lineBytes, isEof := readLine(reader, textFilePath)
		if isEof {
			break
		}

		line := strings.TrimSpace(string(lineBytes))
		if line == "" {
			continue
		}

		if POST_ID_REGEX.MatchString(line) {
			postId, _ := strconv.Atoi(line)
			postIds = append(postIds, postId)
			continue
		}

		if matched := POST_URL_REGEX.FindStringSubmatch(line); matched != nil {
			postId, _ := strconv.Atoi(matched[POST_URL_REGEX_POST_ID_INDEX])
			postIds = append(postIds, postId)
			continue
		}

		color.Yellow("Skipping %q, not a post ID or post URL.", line)
	}

	return utils.RemoveSliceDuplicates(postIds)
}
