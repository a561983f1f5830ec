package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/mergestat/timediff"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// planDetails mirrors the subscription screen of the web client.
var planDetails = map[string]struct {
	Name     string
	Price    string
	Duration string
}{
	movieapi.Plan1Day:    {Name: "Day Pass", Price: "$1.99", Duration: "1 day"},
	movieapi.Plan1Month:  {Name: "Standard", Price: "$7.99", Duration: "1 month"},
	movieapi.Plan3Months: {Name: "Premium", Price: "$19.99", Duration: "3 months"},
}

func init() {
	subscriptionCmd.AddCommand(subscriptionPlansCmd, subscriptionCreateCmd, subscriptionStatusCmd, subscriptionCancelCmd, subscriptionVerifyCmd)
	rootCmd.AddCommand(subscriptionCmd)
}

var subscriptionCmd = &cobra.Command{
	Use:   "subscription",
	Short: "Manage your subscription",
}

var subscriptionPlansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the available subscription plans",
	Run: func(_ *cobra.Command, _ []string) {
		for _, id := range movieapi.Plans() {
			p := planDetails[id]
			fmt.Printf("  %-10s %-10s %s for %s\n", id, p.Name, p.Price, p.Duration)
		}
		fmt.Println("\nOnly the 3-months plan unlocks premium movies.")
	},
}

var subscriptionCreateCmd = &cobra.Command{
	Use:   "create <plan>",
	Short: "Start a checkout for the given plan",
	Args:  cobra.ExactArgs(1),
	Run:   runSubscriptionCreate,
}

func runSubscriptionCreate(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	plan := args[0]
	if !lo.Contains(movieapi.Plans(), plan) {
		log.Fatalf("unknown plan %q, run `flicknest subscription plans`", plan)
	}

	app := mustApp(ctx, true)
	app.requireSession()

	checkoutURL, err := app.client.CreateSubscription(ctx, plan)
	if err != nil {
		fatalOnAPIError(err)
	}
	fmt.Println("Complete your payment in the browser:")
	fmt.Printf("  %s\n", checkoutURL)
	fmt.Println("\nAfterwards run `flicknest subscription verify <session-id>`.")
}

var subscriptionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current subscription status",
	Run:   runSubscriptionStatus,
}

func runSubscriptionStatus(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	status, err := app.client.GetSubscriptionStatus(ctx)
	if err != nil {
		fatalOnAPIError(err)
	}

	if !status.Active {
		fmt.Println("No active subscription.")
		return
	}
	if err := app.store.SetPlan(status.PlanType); err != nil {
		log.Warn("failed to persist subscription plan", "error", err)
	}
	fmt.Printf("Active plan: %s", status.PlanType)
	if !status.ExpiresAt.IsZero() {
		fmt.Printf(", renews %s", timediff.TimeDiff(status.ExpiresAt))
	}
	fmt.Println()
}

var subscriptionCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the active subscription",
	Run:   runSubscriptionCancel,
}

func runSubscriptionCancel(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	if err := app.client.CancelSubscription(ctx); err != nil {
		fatalOnAPIError(err)
	}
	if err := app.store.SetPlan(""); err != nil {
		log.Warn("failed to clear cached plan", "error", err)
	}
	fmt.Println("Subscription canceled.")
}

var subscriptionVerifyCmd = &cobra.Command{
	Use:   "verify <session-id>",
	Short: "Confirm a completed checkout session",
	Args:  cobra.ExactArgs(1),
	Run:   runSubscriptionVerify,
}

func runSubscriptionVerify(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	status, err := app.client.VerifyCheckout(ctx, args[0])
	if err != nil {
		fatalOnAPIError(err)
	}
	if status.PlanType != "" {
		if err := app.store.SetPlan(status.PlanType); err != nil {
			log.Warn("failed to persist subscription plan", "error", err)
		}
	}
	fmt.Printf("Subscription confirmed: %s\n", status.PlanType)
}
