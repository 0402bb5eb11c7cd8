package cmds

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/mutate"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/spf13/cobra"
)

var (
	commentsCmd = &cobra.Command{
		Use:   "comments <post_id>",
		Short: "List the comments on a post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config := getConfigOrExit()
			postId := parsePostId(args[0])
			ctx, cancel := getCmdContext()
			defer cancel()

			client := getBlogClient(config)
			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				fmt.Sprintf("Getting the comments on post #%d...", postId),
				fmt.Sprintf("Finished getting the comments on post #%d!", postId),
				fmt.Sprintf("Something went wrong while getting the comments on post #%d, please refer to the logs for more details.", postId),
				0,
			)
			progress.Start()
			comments, err := client.GetComments(ctx, postId)
			if err != nil {
				progress.Stop(true)
				utils.LogError(err, "", true, utils.ERROR)
			}
			progress.Stop(false)

			if len(comments) == 0 {
				color.Yellow("No comments on post #%d yet.", postId)
				return
			}
			for _, comment := range comments {
				printComment(comment)
			}
		},
	}

	commentBody string

	commentCmd = &cobra.Command{
		Use:   "comment <post_id>",
		Short: "Comment on a post",
		Long: utils.CombineStringsWithNewline(
			"Posts a comment on the given post.",
			"The comment shows up in the list immediately and is confirmed by the",
			"server in the background, like the web front-end does it.",
		),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config := getConfigOrExit()
			postId := parsePostId(args[0])
			ctx, cancel := getCmdContext()
			defer cancel()

			body := strings.TrimSpace(commentBody)
			if body == "" {
				color.Red("The comment body cannot be empty, pass one with --body.")
				os.Exit(1)
			}

			author := "anonymous"
			if session := getSession(); session != nil {
				author = session.User.DisplayName()
			}

			client := getBlogClient(config)
			comments, err := client.GetComments(ctx, postId)
			if err != nil {
				utils.LogError(err, "", true, utils.ERROR)
			}

			mutator := mutate.NewMutator(func(comment *models.Comment) string {
				return comment.Id
			})
			mutator.OnChange = func(list []*models.Comment) {
				fmt.Println()
				for _, comment := range list {
					printComment(comment)
				}
			}

			provisional := models.NewProvisionalComment(postId, author, body)
			final, err := mutator.Create(comments, provisional, func() (*models.Comment, error) {
				return client.CreateComment(ctx, postId, author, body)
			})
			if err != nil {
				color.Red("Your comment could not be posted and was removed from the list.")
				color.Red("Your draft so you don't lose it:\n%s", body)
				utils.LogError(err, "", true, utils.ERROR)
			}

			fmt.Println()
			for _, comment := range final {
				printComment(comment)
			}
			color.Green("Comment posted!")
		},
	}
)

func init() {
	commentCmd.Flags().StringVarP(
		&commentBody,
		"body",
		"b",
		"",
		"The text of the comment.",
	)
	commentCmd.MarkFlagRequired("body")
}
