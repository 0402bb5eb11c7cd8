package cmds

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog"
	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/media"
	"github.com/inklinehq/Inkline-CLI/resource"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	postsQuery    string
	postsCategory string
	postsSort     string
	postsLimit    int
	postsOffset   int
	postsCmd      = &cobra.Command{
		Use:   "posts",
		Short: "List and search posts",
		Long:  "Lists the blog's posts, optionally filtered by a search query or a category.",
		Run: func(cmd *cobra.Command, args []string) {
			if !blog.IsValidSort(postsSort) {
				color.Red("Invalid sort order %q, expected one of: newest, oldest, az, za.", postsSort)
				os.Exit(1)
			}

			config := getConfigOrExit()
			client := getBlogClient(config)
			ctx, cancel := getCmdContext()
			defer cancel()

			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				"Getting posts...",
				"",
				"Something went wrong while getting the posts.",
				0,
			)
			progress.Start()

			listing := resource.New[[]*models.Post]()
			posts, ok := awaitResourceWithSpinner(
				ctx,
				progress,
				listing,
				func(ctx context.Context) ([]*models.Post, error) {
					return client.GetPosts(ctx, &blog.PostFilters{
						Query:    postsQuery,
						Category: postsCategory,
						Sort:     postsSort,
						Limit:    postsLimit,
						Offset:   postsOffset,
					})
				},
				"No posts found.",
			)
			if !ok {
				return
			}

			if len(posts) == 0 {
				color.Yellow("No posts matched your filters.")
				return
			}
			for _, post := range posts {
				printPostRow(post)
			}
		},
	}
)

var (
	readOpen     bool
	readComments bool
	readCmd      = &cobra.Command{
		Use:   "read <post_id>",
		Short: "Read a single post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postId := parsePostId(args[0])
			config := getConfigOrExit()
			client := getBlogClient(config)
			ctx, cancel := getCmdContext()
			defer cancel()

			if readOpen {
				postUrl := fmt.Sprintf("%s/post/%d", config.ApiBaseUrl, postId)
				if err := browser.OpenURL(postUrl); err != nil {
					utils.LogError(err, "", false, utils.ERROR)
				}
				return
			}

			postRes := resource.New[*models.Post]()
			post, ok := awaitResource(
				ctx,
				postRes,
				func(ctx context.Context) (*models.Post, error) {
					return client.GetPost(ctx, postId)
				},
				fmt.Sprintf("Post #%d doesn't exist.", postId),
			)
			if !ok {
				return
			}

			printPost(post)
			printSeriesNav(ctx, client, post)

			if readComments {
				comments, err := client.GetComments(ctx, postId)
				if err != nil {
					utils.LogError(err, "", true, utils.ERROR)
				}
				fmt.Printf("\n%s\n", color.New(color.Bold).Sprintf("Comments (%d)", len(comments)))
				for _, comment := range comments {
					printComment(comment)
				}
			}
		},
	}
)

var seriesCmd = &cobra.Command{
	Use:   "series <post_id>",
	Short: "Show the series a post belongs to",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		postId := parsePostId(args[0])
		config := getConfigOrExit()
		client := getBlogClient(config)
		ctx, cancel := getCmdContext()
		defer cancel()

		seriesRes := resource.New[*models.SeriesInfo]()
		series, ok := awaitResource(
			ctx,
			seriesRes,
			func(ctx context.Context) (*models.SeriesInfo, error) {
				return client.GetSeries(ctx, postId)
			},
			fmt.Sprintf("Post #%d doesn't exist.", postId),
		)
		if !ok {
			return
		}

		if len(series.Items) == 0 {
			color.Yellow("Post #%d is not part of a series.", postId)
			return
		}

		if series.Key != "" {
			fmt.Println(color.New(color.Bold).Sprintf("Series: %s", series.Key))
		}
		for _, post := range series.Items {
			cursor := "  "
			if post.Id == postId {
				cursor = color.GreenString("> ")
			}
			part := "-"
			if post.SeriesPart != nil {
				part = fmt.Sprintf("%d", *post.SeriesPart)
			}
			fmt.Printf("%s[%s] #%d %s\n", cursor, part, post.Id, post.Title)
		}
		if series.Prev != nil {
			fmt.Printf("Previous: #%d %s\n", series.Prev.Id, series.Prev.Title)
		}
		if series.Next != nil {
			fmt.Printf("Next:     #%d %s\n", series.Next.Id, series.Next.Title)
		}
	},
}

var (
	featuredMinis int
	featuredCmd   = &cobra.Command{
		Use:   "featured",
		Short: "Show the curated front page selection",
		Run: func(cmd *cobra.Command, args []string) {
			config := getConfigOrExit()
			client := getBlogClient(config)
			ctx, cancel := getCmdContext()
			defer cancel()

			featuredRes := resource.New[*models.FeaturedSet]()
			featured, ok := awaitResource(
				ctx,
				featuredRes,
				func(ctx context.Context) (*models.FeaturedSet, error) {
					return client.GetFeatured(ctx, featuredMinis)
				},
				"Nothing is featured right now.",
			)
			if !ok {
				return
			}

			if featured.Main != nil {
				fmt.Println(color.New(color.Bold).Sprint("Featured"))
				printPostRow(featured.Main)
			}
			if len(featured.Minis) > 0 {
				fmt.Println(color.New(color.Bold).Sprint("\nAlso featured"))
				for _, post := range featured.Minis {
					printPostRow(post)
				}
			}
		},
	}
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "List the posts curated into the portfolio",
	Run: func(cmd *cobra.Command, args []string) {
		config := getConfigOrExit()
		client := getBlogClient(config)
		ctx, cancel := getCmdContext()
		defer cancel()

		portfolioRes := resource.New[[]*models.Post]()
		posts, ok := awaitResource(
			ctx,
			portfolioRes,
			func(ctx context.Context) ([]*models.Post, error) {
				return client.GetPortfolio(ctx)
			},
			"The portfolio is empty.",
		)
		if !ok {
			return
		}

		if len(posts) == 0 {
			color.Yellow("The portfolio is empty.")
			return
		}
		for _, post := range posts {
			printPostRow(post)
		}
	},
}

func printPost(post *models.Post) {
	fmt.Println(color.New(color.Bold).Sprint(post.Title))
	fmt.Printf(
		"%s · %s · %s\n",
		post.Author,
		post.Category,
		post.CreatedAt.Format("Jan 2, 2006"),
	)
	if post.CoverImageUrl != "" {
		fmt.Printf("Cover: %s\n", media.TransformUrl(post.CoverImageUrl, media.CoverTransform()))
	}
	fmt.Printf("\n%s\n", blog.PlainText(post.Content))

	if len(post.VideoUrls) > 0 {
		fmt.Println(color.New(color.Bold).Sprint("\nVideos"))
		for _, videoUrl := range post.VideoUrls {
			info := media.ClassifyVideo(videoUrl)
			fmt.Printf("  [%s] %s\n", info.Kind, media.EmbedUrl(videoUrl))
		}
	}
}

// printSeriesNav shows where the post sits in its series, if any.
// Series info is supplementary so a failed lookup is not fatal.
func printSeriesNav(ctx context.Context, client *blog.Client, post *models.Post) {
	if post.SeriesKey == "" && post.SeriesPart == nil {
		return
	}

	series, err := client.GetSeries(ctx, post.Id)
	if err != nil || len(series.Items) == 0 {
		return
	}

	fmt.Println()
	if series.Prev != nil {
		fmt.Printf("Previous in series: #%d %s\n", series.Prev.Id, series.Prev.Title)
	}
	if series.Next != nil {
		fmt.Printf("Next in series:     #%d %s\n", series.Next.Id, series.Next.Title)
	}
}

// awaitResourceWithSpinner is awaitResource with the spinner stopped
// before anything gets printed.
func awaitResourceWithSpinner[T any](
	ctx context.Context,
	progress *spinner.Spinner,
	res *resource.RemoteResource[T],
	fetch resource.FetchFunc[T],
	notFoundMsg string,
) (T, bool) {
	<-res.Start(ctx, fetch)

	snap := res.Snapshot()
	progress.Stop(snap.Status == resource.Error)

	switch snap.Status {
	case resource.Ok:
		return snap.Data, true
	case resource.NotFound:
		color.Yellow(notFoundMsg)
	case resource.Error:
		utils.LogError(snap.Err, "", false, utils.ERROR)
	}

	var zero T
	return zero, false
}

func init() {
	postsCmd.Flags().StringVarP(
		&postsQuery,
		"query",
		"q",
		"",
		"Search the posts' titles, excerpts, and contents.",
	)
	postsCmd.Flags().StringVarP(
		&postsCategory,
		"category",
		"c",
		"",
		fmt.Sprintf("Only list posts in this category, one of: %v.", blog.Categories),
	)
	postsCmd.Flags().StringVar(
		&postsSort,
		"sort",
		blog.SortNewest,
		utils.CombineStringsWithNewline(
			"Sort order of the listing.",
			"One of: newest, oldest, az, za.",
		),
	)
	postsCmd.Flags().IntVar(
		&postsLimit,
		"limit",
		0,
		"Maximum number of posts to list. 0 lists everything the server returns.",
	)
	postsCmd.Flags().IntVar(
		&postsOffset,
		"offset",
		0,
		"Number of posts to skip, for paging through long listings.",
	)

	readCmd.Flags().BoolVar(
		&readOpen,
		"open",
		false,
		"Open the post in your browser instead of printing it.",
	)
	readCmd.Flags().BoolVar(
		&readComments,
		"comments",
		false,
		"Also print the post's comments.",
	)

	featuredCmd.Flags().IntVar(
		&featuredMinis,
		"minis",
		5,
		"Number of secondary featured posts to show.",
	)
}
