package cmds

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/configs"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/spf13/cobra"
)

var (
	rootApiUrl       string
	rootAuthUrl      string
	rootCloudName    string
	rootUploadPreset string
	rootSavePath     string
	rootUserAgent    string
	rootOverwrite    bool

	RootCmd = &cobra.Command{
		Use: "inkline",
		Version: fmt.Sprintf(
			"%s\n%s",
			utils.VERSION,
			"GitHub Repo: https://github.com/inklinehq/Inkline-CLI",
		),
		Short: "Read, publish, and curate posts on an Inkline blog from your terminal.",
		Long: utils.CombineStringsWithNewline(
			"Inkline CLI is a command-line client for an Inkline blog deployment.",
			"It browses and searches posts, publishes and edits them with media uploads,",
			"posts comments, and saves posts with their assets for offline reading.",
		),
		Run: func(cmd *cobra.Command, args []string) {
			saveRootConfig(cmd)
		},
	}
)

func init() {
	RootCmd.Flags().StringVar(
		&rootApiUrl,
		"api-url",
		"",
		"Configure the content API origin, e.g. \"https://blog.example.com\", and save it for future runs.",
	)
	RootCmd.Flags().StringVar(
		&rootAuthUrl,
		"auth-url",
		"",
		"Configure the identity provider origin used by the login command and save it for future runs.",
	)
	RootCmd.Flags().StringVar(
		&rootCloudName,
		"cloud-name",
		"",
		"Configure the media host cloud name used for uploads and save it for future runs.",
	)
	RootCmd.Flags().StringVar(
		&rootUploadPreset,
		"upload-preset",
		"",
		"Configure the media host unsigned upload preset and save it for future runs.",
	)
	RootCmd.Flags().StringVar(
		&rootSavePath,
		"save-path",
		"",
		"Configure the path the save command writes posts to and save it for future runs.",
	)
	RootCmd.Flags().StringVar(
		&rootUserAgent,
		"user-agent",
		"",
		"Configure a custom user agent to use for all requests and save it for future runs.",
	)
	RootCmd.Flags().BoolVarP(
		&rootOverwrite,
		"overwrite",
		"o",
		false,
		utils.CombineStringsWithNewline(
			"Use this flag to overwrite any existing but incomplete saved files.",
			"Does this by verifying against the Content-Length header response,",
			"if the size of the locally saved file does not match with the header response, overwrite the existing file.",
		),
	)

	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.AddCommand(
		postsCmd,
		readCmd,
		publishCmd,
		editCmd,
		deleteCmd,
		commentsCmd,
		commentCmd,
		featuredCmd,
		portfolioCmd,
		seriesCmd,
		newsCmd,
		saveCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
	)
}

func saveRootConfig(cmd *cobra.Command) {
	config, err := configs.LoadConfig()
	if err != nil {
		utils.LogError(err, "", true, utils.ERROR)
	}

	changed := false
	if cmd.Flags().Changed("api-url") {
		config.ApiBaseUrl = rootApiUrl
		changed = true
	}
	if cmd.Flags().Changed("auth-url") {
		config.AuthBaseUrl = rootAuthUrl
		changed = true
	}
	if cmd.Flags().Changed("cloud-name") {
		config.CloudName = rootCloudName
		changed = true
	}
	if cmd.Flags().Changed("upload-preset") {
		config.UploadPreset = rootUploadPreset
		changed = true
	}
	if cmd.Flags().Changed("save-path") {
		config.SavePath = rootSavePath
		changed = true
	}
	if cmd.Flags().Changed("user-agent") {
		config.UserAgent = rootUserAgent
		changed = true
	}
	if cmd.Flags().Changed("overwrite") {
		config.OverwriteFiles = rootOverwrite
		changed = true
	}

	if !changed {
		cmd.Help()
		return
	}

	if err := configs.SaveConfig(config); err != nil {
		utils.LogError(err, "", true, utils.ERROR)
	}
	color.Green("Saved the configuration to %s", utils.APP_PATH)
}
