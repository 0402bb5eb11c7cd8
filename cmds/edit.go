package cmds

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog"
	"github.com/inklinehq/Inkline-CLI/cmds/textparser"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/spf13/cobra"
)

var (
	editTitle            string
	editCategory         string
	editExcerpt          string
	editContentFile      string
	editCoverUrl         string
	editFeaturedSlot     string
	editFeaturedRank     int
	editSeriesKey        string
	editSeriesPart       int
	editAppendUpdateFile string

	editCmd = &cobra.Command{
		Use:   "edit <post_id>",
		Short: "Edit an existing post",
		Long: utils.CombineStringsWithNewline(
			"Edits an existing post. Only the fields passed as flags are changed,",
			"everything else on the post is left as-is.",
			"--append-update adds a timestamped update section to the end of the",
			"post's content instead of replacing it.",
		),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			requireAdmin()
			config := getConfigOrExit()
			postId := parsePostId(args[0])
			ctx, cancel := getCmdContext()
			defer cancel()

			patch := buildEditPatch(cmd)
			if len(patch) == 0 && editAppendUpdateFile == "" {
				color.Red("Nothing to change, pass at least one field flag or --append-update.")
				os.Exit(1)
			}

			client := getBlogClient(config)
			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				fmt.Sprintf("Updating post #%d...", postId),
				fmt.Sprintf("Updated post #%d!", postId),
				fmt.Sprintf("Something went wrong while updating post #%d, please refer to the logs for more details.", postId),
				0,
			)
			progress.Start()

			if len(patch) > 0 {
				if _, err := client.UpdatePost(ctx, postId, patch); err != nil {
					progress.Stop(true)
					utils.LogError(err, "", true, utils.ERROR)
				}
			}
			if editAppendUpdateFile != "" {
				updateHtml := readContentFile(editAppendUpdateFile)
				if _, err := client.AppendUpdate(ctx, postId, updateHtml); err != nil {
					progress.Stop(true)
					utils.LogError(err, "", true, utils.ERROR)
				}
			}
			progress.Stop(false)
		},
	}

	deletePostsFile string

	deleteCmd = &cobra.Command{
		Use:   "delete [post_id...]",
		Short: "Delete one or more posts",
		Long: utils.CombineStringsWithNewline(
			"Deletes the given posts. A post that is already gone counts as deleted.",
			"Post IDs can be passed as arguments or read from a text file with one",
			"post ID or post URL per line.",
		),
		Run: func(cmd *cobra.Command, args []string) {
			requireAdmin()
			config := getConfigOrExit()
			ctx, cancel := getCmdContext()
			defer cancel()

			postIds := make([]int, 0, len(args))
			for _, arg := range args {
				postIds = append(postIds, parsePostId(arg))
			}
			if deletePostsFile != "" {
				postIds = append(postIds, textparser.ParsePostsTextFile(deletePostsFile)...)
			}
			postIds = utils.RemoveSliceDuplicates(postIds)
			if len(postIds) == 0 {
				color.Red("No post IDs to delete, pass them as arguments or with --file.")
				os.Exit(1)
			}

			client := getBlogClient(config)
			baseMsg := "Deleting post %d out of " + fmt.Sprintf("%d...", len(postIds))
			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				fmt.Sprintf(baseMsg, 1),
				fmt.Sprintf("Deleted %d posts!", len(postIds)),
				"Something went wrong while deleting, please refer to the logs for more details.",
				len(postIds),
			)
			progress.Start()
			for _, postId := range postIds {
				if err := client.DeletePost(ctx, postId); err != nil {
					progress.Stop(true)
					utils.LogError(err, "", true, utils.ERROR)
				}
				progress.MsgIncrement(baseMsg)
			}
			progress.Stop(false)
		},
	}
)

// buildEditPatch collects only the flags the user actually set so an
// edit never clobbers fields it was not asked to touch.
func buildEditPatch(cmd *cobra.Command) map[string]any {
	patch := map[string]any{}
	if cmd.Flags().Changed("title") {
		patch["title"] = editTitle
	}
	if cmd.Flags().Changed("category") {
		patch["category"] = blog.CanonicalCategory(editCategory)
	}
	if cmd.Flags().Changed("excerpt") {
		patch["excerpt"] = editExcerpt
		patch["description"] = editExcerpt
	}
	if cmd.Flags().Changed("content") {
		patch["content"] = readContentFile(editContentFile)
	}
	if cmd.Flags().Changed("cover-url") {
		patch["cover_image_url"] = editCoverUrl
	}
	if cmd.Flags().Changed("featured-slot") {
		patch["featured_slot"] = editFeaturedSlot
	}
	if cmd.Flags().Changed("featured-rank") {
		patch["featured_rank"] = editFeaturedRank
	}
	if cmd.Flags().Changed("series-key") {
		patch["series_key"] = editSeriesKey
	}
	if cmd.Flags().Changed("series-part") {
		patch["series_part"] = editSeriesPart
	}
	return patch
}

func init() {
	editCmd.Flags().StringVarP(
		&editTitle,
		"title",
		"t",
		"",
		"New title for the post.",
	)
	editCmd.Flags().StringVarP(
		&editCategory,
		"category",
		"c",
		"",
		fmt.Sprintf("New category for the post, one of: %v.", blog.Categories),
	)
	editCmd.Flags().StringVar(
		&editExcerpt,
		"excerpt",
		"",
		"New excerpt for the post.",
	)
	editCmd.Flags().StringVar(
		&editContentFile,
		"content",
		"",
		"Path to an HTML file that replaces the post's content.",
	)
	editCmd.Flags().StringVar(
		&editCoverUrl,
		"cover-url",
		"",
		"New cover image URL for the post.",
	)
	editCmd.Flags().StringVar(
		&editFeaturedSlot,
		"featured-slot",
		"",
		"New front page slot for the post, one of: none, main, mini, portfolio.",
	)
	editCmd.Flags().IntVar(
		&editFeaturedRank,
		"featured-rank",
		0,
		"New ordering of the post within its featured slot.",
	)
	editCmd.Flags().StringVar(
		&editSeriesKey,
		"series-key",
		"",
		"New series key for the post.",
	)
	editCmd.Flags().IntVar(
		&editSeriesPart,
		"series-part",
		0,
		"New part number within the post's series.",
	)
	editCmd.Flags().StringVar(
		&editAppendUpdateFile,
		"append-update",
		"",
		utils.CombineStringsWithNewline(
			"Path to an HTML file whose contents are appended to the post",
			"as a timestamped update section.",
		),
	)

	deleteCmd.Flags().StringVarP(
		&deletePostsFile,
		"file",
		"f",
		"",
		"Path to a text file with one post ID or post URL per line.",
	)
}
