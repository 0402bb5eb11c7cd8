package cmds

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog"
	"github.com/inklinehq/Inkline-CLI/media"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	publishTitle        string
	publishCategory     string
	publishContentFile  string
	publishExcerpt      string
	publishCoverFile    string
	publishEmbedFiles   []string
	publishVideoUrls    []string
	publishFeaturedSlot string
	publishFeaturedRank int
	publishSeriesKey    string
	publishSeriesPart   int
	publishNotify       bool
	publishOpen         bool

	publishCmd = &cobra.Command{
		Use:   "publish",
		Short: "Publish a new post",
		Long: utils.CombineStringsWithNewline(
			"Publishes a new post from a local HTML content file.",
			"Local images passed with --embed are uploaded to the media host first and",
			"the published content references their permanent delivery URLs.",
		),
		Run: func(cmd *cobra.Command, args []string) {
			session := requireAdmin()
			config := getConfigOrExit()
			ctx, cancel := getCmdContext()
			defer cancel()

			content := readContentFile(publishContentFile)

			draft := &blog.Draft{
				Title:        publishTitle,
				Category:     publishCategory,
				Author:       session.User.DisplayName(),
				Excerpt:      publishExcerpt,
				Content:      content,
				VideoUrls:    publishVideoUrls,
				FeaturedSlot: publishFeaturedSlot,
			}
			if publishFeaturedRank > 0 {
				draft.FeaturedRank = &publishFeaturedRank
			}
			if publishSeriesKey != "" {
				draft.SeriesKey = publishSeriesKey
			}
			if publishSeriesPart > 0 {
				draft.SeriesPart = &publishSeriesPart
			}

			warnUnknownVideoUrls(publishVideoUrls)

			needsUploads := len(publishEmbedFiles) > 0 || publishCoverFile != ""
			if needsUploads {
				if err := config.ValidateUploads(); err != nil {
					color.Red(err.Error())
					os.Exit(1)
				}
				uploader := media.NewUploader(
					config.CloudName,
					config.UploadPreset,
					config.UserAgent,
				)
				pipeline := media.NewPipeline(uploader)
				resolveDraftMedia(ctx, pipeline, draft)
			}

			if draft.CoverImageUrl == "" && session.User.ImageUrl != "" {
				// fall back to the author's profile image, like the web editor does
				draft.CoverImageUrl = session.User.ImageUrl
			}

			if err := draft.Validate(); err != nil {
				color.Red(err.Error())
				os.Exit(1)
			}

			client := getBlogClient(config)
			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				"Publishing the post...",
				"Published!",
				"Something went wrong while publishing, please refer to the logs for more details.",
				0,
			)
			progress.Start()
			post, err := client.CreatePost(ctx, draft)
			if err != nil {
				progress.Stop(true)
				utils.LogError(err, "", true, utils.ERROR)
			}
			progress.Stop(false)

			color.Green("Published post #%d: %s", post.Id, post.Title)
			if publishNotify {
				utils.AlertWithoutErr(utils.Title, fmt.Sprintf("Published post #%d!", post.Id))
			}
			if publishOpen {
				postUrl := fmt.Sprintf("%s/post/%d", config.ApiBaseUrl, post.Id)
				if err := browser.OpenURL(postUrl); err != nil {
					utils.LogError(err, "", false, utils.ERROR)
				}
			}
		},
	}
)

func readContentFile(contentFilePath string) string {
	if contentFilePath == "" {
		color.Red("A content file is required, pass one with --content.")
		os.Exit(1)
	}
	content, err := os.ReadFile(contentFilePath)
	if err != nil {
		utils.LogError(
			fmt.Errorf(
				"input error %d: unable to read the content file %s, more info => %v",
				utils.INPUT_ERROR,
				contentFilePath,
				err,
			),
			"",
			true,
			utils.ERROR,
		)
	}
	return string(content)
}

func warnUnknownVideoUrls(videoUrls []string) {
	for _, videoUrl := range videoUrls {
		if media.ClassifyVideo(videoUrl).Kind == media.VideoUnknown {
			color.Yellow("Warning: %q is not a recognized video URL and will be embedded as-is.", videoUrl)
		}
	}
}

// resolveDraftMedia stages the local media files, appends the embeds
// to the draft content, and resolves everything to permanent URLs.
// The cover is uploaded separately and delivered with the cover
// transform.
func resolveDraftMedia(ctx context.Context, pipeline *media.Pipeline, draft *blog.Draft) {
	for _, embedFile := range publishEmbedFiles {
		ref, err := pipeline.InsertProvisional(embedFile)
		if err != nil {
			utils.LogError(err, "", true, utils.ERROR)
		}
		draft.Content += fmt.Sprintf(`<p><img src="%s" alt="%s"/></p>`, ref, filepath.Base(embedFile))
	}

	uploadsLen := len(publishEmbedFiles)
	if publishCoverFile != "" {
		uploadsLen++
	}
	progress := spinner.New(
		spinner.DL_SPINNER,
		"fgHiYellow",
		fmt.Sprintf("Uploading %d media files...", uploadsLen),
		fmt.Sprintf("Finished uploading %d media files!", uploadsLen),
		"Something went wrong while uploading, the post was not published.",
		0,
	)
	progress.Start()

	resolved, _, err := pipeline.ResolveAll(ctx, draft.Content)
	if err != nil {
		progress.Stop(true)
		utils.LogError(err, "", true, utils.ERROR)
	}
	draft.Content = resolved

	if publishCoverFile != "" {
		cover, err := pipeline.ReplaceCover(ctx, nil, publishCoverFile)
		if err != nil {
			progress.Stop(true)
			utils.LogError(err, "", true, utils.ERROR)
		}
		draft.CoverImageUrl = media.CoverUrl(cover)
	}
	progress.Stop(false)
}

func init() {
	publishCmd.Flags().StringVarP(
		&publishTitle,
		"title",
		"t",
		"",
		"Title of the new post.",
	)
	publishCmd.Flags().StringVarP(
		&publishCategory,
		"category",
		"c",
		"",
		fmt.Sprintf("Category of the new post, one of: %v.", blog.Categories),
	)
	publishCmd.Flags().StringVar(
		&publishContentFile,
		"content",
		"",
		"Path to an HTML file with the post's content.",
	)
	publishCmd.Flags().StringVar(
		&publishExcerpt,
		"excerpt",
		"",
		utils.CombineStringsWithNewline(
			"Short text shown in listings.",
			"Derived from the first part of the content when omitted.",
		),
	)
	publishCmd.Flags().StringVar(
		&publishCoverFile,
		"cover",
		"",
		"Path to a local image to upload and use as the post's cover.",
	)
	publishCmd.Flags().StringSliceVar(
		&publishEmbedFiles,
		"embed",
		[]string{},
		utils.CombineStringsWithNewline(
			"Path(s) to local images to upload and append to the post's content.",
			"For multiple files, separate them with a comma.",
		),
	)
	publishCmd.Flags().StringSliceVar(
		&publishVideoUrls,
		"video",
		[]string{},
		"YouTube/Vimeo/direct video URL(s) to attach to the post.",
	)
	publishCmd.Flags().StringVar(
		&publishFeaturedSlot,
		"featured-slot",
		"none",
		"Front page slot for the post, one of: none, main, mini, portfolio.",
	)
	publishCmd.Flags().IntVar(
		&publishFeaturedRank,
		"featured-rank",
		0,
		"Ordering of the post within its featured slot, lower ranks first.",
	)
	publishCmd.Flags().StringVar(
		&publishSeriesKey,
		"series-key",
		"",
		"Key grouping this post into a series with others sharing the same key.",
	)
	publishCmd.Flags().IntVar(
		&publishSeriesPart,
		"series-part",
		0,
		"This post's part number within its series.",
	)
	publishCmd.Flags().BoolVar(
		&publishNotify,
		"notify",
		false,
		"Send a desktop notification once the post is published.",
	)
	publishCmd.Flags().BoolVar(
		&publishOpen,
		"open",
		false,
		"Open the published post in your browser.",
	)
}
