package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	notifyCmd.AddCommand(notifyRegisterCmd)
	rootCmd.AddCommand(notifyCmd)
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage push notification registration",
}

var notifyRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register this device for push notifications",
	Run:   runNotifyRegister,
}

func runNotifyRegister(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	// Reuse the persisted device token so re-registration is idempotent.
	token := app.store.DeviceToken()
	if token == "" {
		token = uuid.NewString()
	}

	if err := app.client.RegisterDeviceToken(ctx, token); err != nil {
		fatalOnAPIError(err)
	}
	if err := app.store.SetDeviceToken(token); err != nil {
		log.Warn("device token registered but not persisted", "error", err)
	}
	fmt.Println("Device registered for push notifications.")
}
