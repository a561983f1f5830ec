package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	profileCmd.AddCommand(profilePictureCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profilePictureCmd = &cobra.Command{
	Use:   "picture <path>",
	Short: "Upload a new profile picture",
	Args:  cobra.ExactArgs(1),
	Run:   runProfilePicture,
}

func runProfilePicture(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	file, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("failed to open image: %v", err)
	}
	defer file.Close() //nolint:errcheck

	user, err := app.client.UpdateProfilePicture(ctx, filepath.Base(args[0]), file)
	if err != nil {
		fatalOnAPIError(err)
	}
	if err := app.store.SetUser(*user); err != nil {
		log.Warn("failed to persist refreshed profile", "error", err)
	}
	fmt.Println("Profile picture updated.")
}
