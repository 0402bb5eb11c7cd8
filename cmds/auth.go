package cmds

import (
	"os"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/configs"
	"github.com/inklinehq/Inkline-CLI/identity"
	"github.com/inklinehq/Inkline-CLI/utils"
	"github.com/spf13/cobra"
)

var (
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in through your browser",
		Long: utils.CombineStringsWithNewline(
			"Opens a browser window on the sign-in page and waits for you to",
			"sign in. The session is saved locally for the other commands.",
		),
		Run: func(cmd *cobra.Command, args []string) {
			config, err := configs.LoadConfig()
			if err != nil {
				utils.LogError(err, "", true, utils.ERROR)
			}
			if err := config.ValidateAuth(); err != nil {
				color.Red(err.Error())
				os.Exit(1)
			}

			session, err := identity.LoginWithBrowser(config.AuthBaseUrl, config.UserAgent)
			if err != nil {
				utils.LogError(err, "", true, utils.ERROR)
			}
			color.Green("Signed in as %s!", session.User.DisplayName())
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Run: func(cmd *cobra.Command, args []string) {
			if err := identity.ClearSession(); err != nil {
				utils.LogError(err, "", true, utils.ERROR)
			}
			color.Green("Signed out.")
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show who you are signed in as",
		Run: func(cmd *cobra.Command, args []string) {
			session := getSession()
			if session == nil {
				color.Yellow("You are not signed in.")
				return
			}

			config, err := configs.LoadConfig()
			if err != nil {
				utils.LogError(err, "", true, utils.ERROR)
			}

			// refresh the user claims when the auth server is reachable,
			// otherwise fall back to what was saved at sign-in
			user := session.User
			if config.ValidateAuth() == nil {
				sessionCookie := identity.GetSessionCookie(session.SessionValue, config.AuthBaseUrl)
				refreshed, err := identity.VerifySessionCookie(sessionCookie, config.AuthBaseUrl, config.UserAgent)
				if err != nil {
					color.Yellow("Your saved session is no longer valid, run the login command again.")
					utils.LogError(err, "", true, utils.ERROR)
				}
				user = refreshed
				session.User = refreshed
				if err := identity.SaveSession(session); err != nil {
					utils.LogError(err, "", false, utils.ERROR)
				}
			}

			color.Green("Signed in as %s", user.DisplayName())
			if user.IsAdmin() {
				color.Cyan("You have authoring permissions.")
			}
		},
	}
)
