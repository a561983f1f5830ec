package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/config"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/flicknest/flicknest/session"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.flicknest, /etc/flicknest)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "flicknest",
	Short: "Flicknest is a terminal client for browsing movies and managing your subscription",
	Long:  `Flicknest lets you browse and search a movie catalog, keep a wishlist, manage your subscription and, with a supervisor account, maintain the catalog itself.`,
	Example: `  flicknest home
  flicknest movies --genre Action --page 2
  flicknest login --email me@example.com`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setLogLevel(rootCmdPersistentFlags.LogLevel)
		logToFile()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// app bundles the wiring every subcommand needs.
type app struct {
	cfg    *config.Config
	store  *session.Store
	client *movieapi.Client
}

// newApp loads the config, opens the session store and builds the API
// client. hydrate refreshes the cached profile from the backend; it is
// best-effort and never fails the command.
func newApp(ctx context.Context, hydrate bool) (*app, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" && cfg.LogLevel != "" {
		setLogLevel(cfg.LogLevel)
	}

	store, err := session.Open(os.ExpandEnv(cfg.StateDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client := movieapi.New(cfg.API, store)
	if hydrate {
		store.Hydrate(ctx, client)
	}

	return &app{cfg: cfg, store: store, client: client}, nil
}

// mustApp is newApp for commands that cannot proceed without wiring.
func mustApp(ctx context.Context, hydrate bool) *app {
	a, err := newApp(ctx, hydrate)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return a
}

// requireSession aborts the command when no session token is present.
func (a *app) requireSession() {
	if a.store.Token() == "" {
		log.Fatalf("you are not logged in, run `flicknest login` first")
	}
}

// fatalOnAPIError reports an API failure and exits. Auth failures get
// the login hint instead of a retry: an expired session is resolved by
// logging in again, never silently.
func fatalOnAPIError(err error) {
	if err == nil {
		return
	}
	if movieapi.IsAuth(err) {
		log.Fatalf("your session has expired, run `flicknest login` again")
	}
	log.Fatalf("%v", err)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "":
		log.SetLevel(log.InfoLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	// Write to both console and file
	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
}

func Execute() error {
	return rootCmd.Execute()
}
