package cmds

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/api/blog"
	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/configs"
	"github.com/inklinehq/Inkline-CLI/identity"
	"github.com/inklinehq/Inkline-CLI/resource"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// getCmdContext returns a context that is cancelled when the
// user presses Ctrl+C.
func getCmdContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()
	return ctx, cancel
}

func getConfigOrExit() *configs.Config {
	config, err := configs.LoadConfig()
	if err != nil {
		utils.LogError(err, "", true, utils.ERROR)
	}
	if err := config.ValidateApi(); err != nil {
		color.Red(err.Error())
		os.Exit(1)
	}
	return config
}

// getSession returns the saved session, or nil when signed out.
func getSession() *identity.Session {
	session, err := identity.LoadSession()
	if err != nil {
		utils.LogError(err, "", false, utils.ERROR)
		return nil
	}
	return session
}

// requireAdmin gates the authoring commands on the signed-in user's
// role claim. The server enforces the real permissions, this just
// fails earlier with a clearer message.
func requireAdmin() *identity.Session {
	session := getSession()
	if session == nil {
		color.Red("You need to sign in first, run the login command.")
		os.Exit(1)
	}
	if !session.User.IsAdmin() {
		color.Red("Your account does not have authoring permissions.")
		os.Exit(1)
	}
	return session
}

func getApiCookies(config *configs.Config, session *identity.Session) []*http.Cookie {
	if session == nil || session.SessionValue == "" {
		return nil
	}
	return []*http.Cookie{
		identity.GetSessionCookie(session.SessionValue, config.ApiBaseUrl),
	}
}

func getBlogClient(config *configs.Config) *blog.Client {
	return blog.NewClient(
		config.ApiBaseUrl,
		config.UserAgent,
		getApiCookies(config, getSession()),
	)
}

func parsePostId(arg string) int {
	postId, err := strconv.Atoi(arg)
	if err != nil || postId <= 0 {
		color.Red("Invalid post id %q, expected a positive number.", arg)
		os.Exit(1)
	}
	return postId
}

// awaitResource drives one fetch-for-display lifecycle and renders
// the terminal state. Returns the data only when the fetch ended Ok.
func awaitResource[T any](ctx context.Context, res *resource.RemoteResource[T], fetch resource.FetchFunc[T], notFoundMsg string) (T, bool) {
	<-res.Start(ctx, fetch)

	snap := res.Snapshot()
	switch snap.Status {
	case resource.Ok:
		return snap.Data, true
	case resource.NotFound:
		color.Yellow(notFoundMsg)
	case resource.Error:
		utils.LogError(snap.Err, "", false, utils.ERROR)
		color.Red("Something went wrong, please try again or refer to the logs for more details.")
	default:
		// a cancelled fetch never settles into a terminal state
	}

	var zero T
	return zero, false
}

func printPostRow(post *models.Post) {
	category := post.Category
	if category == "" {
		category = "-"
	}
	fmt.Printf(
		"%s  %s\n    %s · %s · %s\n",
		color.CyanString("#%d", post.Id),
		color.New(color.Bold).Sprint(post.Title),
		post.Author,
		category,
		post.CreatedAt.Format("Jan 2, 2006"),
	)
	if post.Excerpt != "" {
		fmt.Printf("    %s\n", post.Excerpt)
	}
}

func printComment(comment *models.Comment) {
	marker := ""
	if comment.IsProvisional() {
		marker = color.YellowString(" (sending...)")
	}
	fmt.Printf(
		"%s %s%s\n    %s\n",
		color.CyanString(comment.Author),
		comment.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		marker,
		comment.Body,
	)
}
