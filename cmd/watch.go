package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/catalog"
	"github.com/flicknest/flicknest/scheduler"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the background daemon that keeps subscription status and catalog fresh",
	Run:   runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	sched, err := scheduler.New()
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}

	statusInterval := time.Duration(app.cfg.Watch.StatusInterval) * time.Minute
	catalogInterval := time.Duration(app.cfg.Watch.CatalogInterval) * time.Minute

	if err := sched.AddJob("refresh-subscription", statusInterval, true, func(ctx context.Context) error {
		status, err := app.client.GetSubscriptionStatus(ctx)
		if err != nil {
			return err
		}
		plan := ""
		if status.Active {
			plan = status.PlanType
		}
		if err := app.store.SetPlan(plan); err != nil {
			return err
		}
		log.Info("subscription status refreshed", "active", status.Active, "plan", plan)
		return nil
	}); err != nil {
		log.Fatalf("%v", err)
	}

	if err := sched.AddJob("refresh-catalog", catalogInterval, true, func(ctx context.Context) error {
		agg, err := catalog.Build(ctx, app.catalogSource())
		if err != nil {
			return err
		}
		log.Info("catalog refreshed", "movies", len(agg.Movies), "topRated", len(agg.TopRated), "latest", len(agg.Latest))
		return nil
	}); err != nil {
		log.Fatalf("%v", err)
	}

	sched.Start()

	// Wait for interrupt signal to shut down gracefully
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("flicknest watch started")
	<-c
	log.Info("shutting down gracefully...")

	if err := sched.Stop(); err != nil {
		log.Error("scheduler shutdown error", "error", err)
	}
}
