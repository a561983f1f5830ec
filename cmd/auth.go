package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var loginCmdFlags struct {
	Email    string
	Password string
}

var signupCmdFlags struct {
	Name     string
	Email    string
	Password string
}

func init() {
	loginCmd.Flags().StringVar(&loginCmdFlags.Email, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginCmdFlags.Password, "password", "", "Account password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupCmdFlags.Name, "name", "", "Display name")
	signupCmd.Flags().StringVar(&signupCmdFlags.Email, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupCmdFlags.Password, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	Run:   runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, false)

	email := loginCmdFlags.Email
	if email == "" {
		email = prompt("Email: ")
	}
	password := loginCmdFlags.Password
	if password == "" {
		password = prompt("Password: ")
	}

	token, user, err := app.client.Login(ctx, email, password)
	if err != nil {
		fatalOnAPIError(err)
	}
	if err := app.store.Login(token, *user); err != nil {
		log.Fatalf("failed to persist session: %v", err)
	}

	// Subscription status lives on its own endpoint; fetch it once so
	// the premium gate works right after login.
	if status, err := app.client.GetSubscriptionStatus(ctx); err == nil && status.Active {
		if err := app.store.SetPlan(status.PlanType); err != nil {
			log.Warn("failed to persist subscription plan", "error", err)
		}
	}

	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Run:   runSignup,
}

func runSignup(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, false)

	name := signupCmdFlags.Name
	if name == "" {
		name = prompt("Name: ")
	}
	email := signupCmdFlags.Email
	if email == "" {
		email = prompt("Email: ")
	}
	password := signupCmdFlags.Password
	if password == "" {
		password = prompt("Password: ")
	}

	form := movieapi.SignupForm{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	}
	if err := app.client.Signup(ctx, form); err != nil {
		fatalOnAPIError(err)
	}
	fmt.Println("Account created, you can now run `flicknest login`.")
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear all persisted session state",
	Run:   runLogout,
}

func runLogout(cmd *cobra.Command, _ []string) {
	app := mustApp(cmd.Context(), false)
	if err := app.store.Logout(); err != nil {
		log.Fatalf("failed to clear session: %v", err)
	}
	fmt.Println("Logged out.")
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user, wishlist size and subscription status",
	Run:   runWhoami,
}

func runWhoami(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	var (
		user     *movieapi.User
		wishlist []movieapi.Movie
		status   *movieapi.SubscriptionStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = app.client.CurrentUser(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		wishlist, err = app.client.Watchlist(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		status, err = app.client.GetSubscriptionStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		fatalOnAPIError(err)
	}

	fmt.Printf("Name:     %s\n", user.Name)
	fmt.Printf("Role:     %s\n", user.Role)
	fmt.Printf("Wishlist: %d movies\n", len(wishlist))
	if status.Active {
		fmt.Printf("Plan:     %s", status.PlanType)
		if !status.ExpiresAt.IsZero() {
			fmt.Printf(" (renews %s)", timediff.TimeDiff(status.ExpiresAt))
		}
		fmt.Println()
	} else {
		fmt.Println("Plan:     none")
	}
}

// prompt reads one line from stdin.
func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	return strings.TrimSpace(line)
}
