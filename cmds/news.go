package cmds

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog"
	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/spinner"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/spf13/cobra"
)

var (
	newsSymbols []string

	newsCmd = &cobra.Command{
		Use:   "news",
		Short: "Show the curated finance headlines",
		Long: utils.CombineStringsWithNewline(
			"Shows the curated finance headline digest.",
			"Pass --symbols to also show live quotes for the given tickers.",
		),
		Run: func(cmd *cobra.Command, args []string) {
			config := getConfigOrExit()
			ctx, cancel := getCmdContext()
			defer cancel()

			client := getBlogClient(config)
			progress := spinner.New(
				spinner.REQ_SPINNER,
				"fgHiYellow",
				"Getting the latest headlines...",
				"Finished getting the latest headlines!",
				"Something went wrong while getting the headlines, please refer to the logs for more details.",
				0,
			)
			progress.Start()
			digest, err := client.GetFinanceDigest(ctx)
			if err != nil {
				progress.Stop(true)
				utils.LogError(err, "", true, utils.ERROR)
			}
			progress.Stop(false)

			printStory(digest.Hero, "HERO")
			printStory(digest.TopRight, "SPOTLIGHT")
			for _, story := range digest.SubCards {
				printStory(story, "")
			}
			if len(digest.Latest) > 0 {
				fmt.Println(color.New(color.Bold).Sprint("Latest"))
				for _, story := range digest.Latest {
					printStory(story, "")
				}
			}

			if len(newsSymbols) > 0 {
				printQuotes(ctx, client)
			}
		},
	}
)

func printStory(story *models.Story, label string) {
	if story == nil {
		return
	}
	if label != "" {
		fmt.Printf("%s ", color.YellowString("[%s]", label))
	}
	fmt.Printf(
		"%s\n    %s · %s\n    %s\n",
		color.New(color.Bold).Sprint(story.Title),
		story.Source,
		story.Published,
		story.Link,
	)
	if story.Summary != "" {
		fmt.Printf("    %s\n", story.Summary)
	}
}

func printQuotes(ctx context.Context, client *blog.Client) {
	quotes, err := client.GetQuotes(ctx, newsSymbols)
	if err != nil {
		utils.LogError(err, "", true, utils.ERROR)
	}

	fmt.Println(color.New(color.Bold).Sprint("Quotes"))
	for _, quote := range quotes {
		changeStr := color.GreenString("+%.2f (%.2f%%)", quote.Change, quote.Percent)
		if quote.Change < 0 {
			changeStr = color.RedString("%.2f (%.2f%%)", quote.Change, quote.Percent)
		}
		fmt.Printf(
			"%-8s %10.2f %s  %s %s\n",
			quote.Symbol,
			quote.Price,
			quote.Currency,
			changeStr,
			quote.Exchange,
		)
	}
}

func init() {
	newsCmd.Flags().StringSliceVarP(
		&newsSymbols,
		"symbols",
		"s",
		[]string{},
		utils.CombineStringsWithNewline(
			"Stock symbol(s) to show live quotes for, e.g. AAPL.",
			"For multiple symbols, separate them with a comma.",
		),
	)
}
