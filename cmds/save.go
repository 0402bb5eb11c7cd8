package cmds

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/cmds/textparser"
	"github.com/inklinehq/Inkline-CLI/media"
	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/spf13/cobra"
)

var (
	savePostsFile string
	saveUnpack    string

	saveCmd = &cobra.Command{
		Use:   "save [post_id...]",
		Short: "Save posts and their media for offline reading",
		Long: utils.CombineStringsWithNewline(
			"Saves the given posts to disk, together with their cover image, the",
			"images embedded in the content, and any directly hosted video files.",
			"Post IDs can be passed as arguments or read from a text file with one",
			"post ID or post URL per line.",
		),
		Run: func(cmd *cobra.Command, args []string) {
			config := getConfigOrExit()
			ctx, cancel := getCmdContext()
			defer cancel()

			if saveUnpack != "" {
				unpackArchive(ctx, saveUnpack, config.SavePath)
				if len(args) == 0 && savePostsFile == "" {
					return
				}
			}

			postIds := make([]int, 0, len(args))
			for _, arg := range args {
				postIds = append(postIds, parsePostId(arg))
			}
			if savePostsFile != "" {
				postIds = append(postIds, textparser.ParsePostsTextFile(savePostsFile)...)
			}
			postIds = utils.RemoveSliceDuplicates(postIds)
			if len(postIds) == 0 {
				color.Red("No post IDs to save, pass them as arguments or with --file.")
				os.Exit(1)
			}

			client := getBlogClient(config)
			var urlInfoSlice []*request.ToDownload

			baseMsg := "Getting post %d out of " + fmt.Sprintf("%d...", len(postIds))
			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				fmt.Sprintf(baseMsg, 1),
				fmt.Sprintf("Saved %d posts!", len(postIds)),
				"Something went wrong while saving, please refer to the logs for more details.",
				len(postIds),
			)
			progress.Start()
			for _, postId := range postIds {
				post, err := client.GetPost(ctx, postId)
				if err != nil {
					progress.Stop(true)
					utils.LogError(err, "", true, utils.ERROR)
				}

				assetUrls := collectPostAssets(post)
				postDirPath, err := savePostContent(config.SavePath, post, assetUrls)
				if err != nil {
					progress.Stop(true)
					utils.LogError(err, "", true, utils.ERROR)
				}

				assetsDirPath := filepath.Join(postDirPath, "assets")
				for _, assetUrl := range assetUrls {
					urlInfoSlice = append(urlInfoSlice, &request.ToDownload{
						Url:      assetUrl,
						FilePath: filepath.Join(assetsDirPath, localAssetName(assetUrl)),
					})
				}
				progress.MsgIncrement(baseMsg)
			}
			progress.Stop(false)

			request.DownloadUrls(
				urlInfoSlice,
				&request.DlOptions{
					MaxConcurrency: utils.MAX_CONCURRENT_DOWNLOADS,
					UserAgent:      config.UserAgent,
					OverwriteFiles: config.OverwriteFiles,
				},
			)
		},
	}
)

// savePostContent writes the post's content HTML to disk, with every
// remote asset URL rewritten to the relative assets/ path it will be
// downloaded to, and returns the directory the post was saved to.
func savePostContent(savePath string, post *models.Post, assetUrls []string) (string, error) {
	postDirPath := filepath.Join(
		savePath,
		fmt.Sprintf("%d-%s", post.Id, utils.RemoveIllegalCharsInPathName(post.Title)),
	)
	if err := os.MkdirAll(postDirPath, 0755); err != nil {
		return "", fmt.Errorf(
			"error %d: failed to create directory %s, more info => %v",
			utils.OS_ERROR,
			postDirPath,
			err,
		)
	}

	content := post.Content
	for _, assetUrl := range assetUrls {
		content = strings.ReplaceAll(content, assetUrl, "assets/"+localAssetName(assetUrl))
	}

	contentFilePath := filepath.Join(postDirPath, "content.html")
	if err := os.WriteFile(contentFilePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf(
			"error %d: failed to write %s, more info => %v",
			utils.OS_ERROR,
			contentFilePath,
			err,
		)
	}
	return postDirPath, nil
}

// collectPostAssets gathers the downloadable media URLs of a post,
// its cover, the images in its content, and any directly hosted
// videos. YouTube and Vimeo embeds are skipped since they cannot be
// fetched as files.
func collectPostAssets(post *models.Post) []string {
	var assetUrls []string
	if post.CoverImageUrl != "" {
		assetUrls = append(assetUrls, post.CoverImageUrl)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(post.Content))
	if err == nil {
		doc.Find("img").Each(func(_ int, selection *goquery.Selection) {
			if src, exists := selection.Attr("src"); exists && src != "" {
				assetUrls = append(assetUrls, src)
			}
		})
	}

	for _, videoUrl := range post.VideoUrls {
		if media.ClassifyVideo(videoUrl).Kind == media.VideoDirect {
			assetUrls = append(assetUrls, videoUrl)
		}
	}

	var downloadable []string
	for _, assetUrl := range utils.RemoveSliceDuplicates(assetUrls) {
		if strings.HasPrefix(assetUrl, "http") {
			downloadable = append(downloadable, assetUrl)
		}
	}
	return downloadable
}

// localAssetName derives the same on-disk filename the download step
// will use for the URL.
func localAssetName(assetUrl string) string {
	filename := utils.GetLastPartOfUrl(assetUrl)
	return utils.RemoveExtFromFilename(filename) + strings.ToLower(filepath.Ext(filename))
}

func unpackArchive(ctx context.Context, archivePath, savePath string) {
	destDirPath := filepath.Join(
		savePath,
		strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath)),
	)
	if err := utils.ExtractFiles(ctx, archivePath, destDirPath, false); err != nil {
		utils.LogError(err, "", true, utils.ERROR)
	}
	color.Green("Unpacked %s to %s", archivePath, destDirPath)
}

func init() {
	saveCmd.Flags().StringVarP(
		&savePostsFile,
		"file",
		"f",
		"",
		"Path to a text file with one post ID or post URL per line.",
	)
	saveCmd.Flags().StringVar(
		&saveUnpack,
		"unpack",
		"",
		utils.CombineStringsWithNewline(
			"Path to a previously exported archive of saved posts.",
			"The archive is extracted into the configured save path.",
		),
	)
}
