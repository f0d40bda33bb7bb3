package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/pmboard/internal/config"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/h0rv/pmboard/internal/route"
	"github.com/h0rv/pmboard/internal/store"
	"github.com/h0rv/pmboard/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	configFlag string
	pathFlag   string
	forceFlag  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pmboard",
		Short: "Terminal client for the project management service",
		Long: `pmboard is a terminal client for a project management GraphQL service.

Browse projects, track task progress and due dates, change task status,
and comment on tasks without leaving the terminal.

Configuration is read from ~/.config/pmboard/config.yaml (or --config),
then PM_* environment variables, then flags. Run 'pmboard config init'
to write a starter file.`,
		SilenceUsage: true,
		RunE:         run,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Config file (default ~/.config/pmboard/config.yaml)")
	pf.String("api-url", "", "GraphQL endpoint URL")
	pf.String("org", "", "Organization slug sent with every request")
	pf.String("web-url", "", "Base URL of the web app, used to open projects in a browser")
	pf.Duration("timeout", 0, "Request timeout")
	pf.Duration("cache-ttl", 0, "How long list and detail results stay fresh")
	pf.String("list-shape", "", "Project list query shape: aggregate or embedded")
	pf.String("author-email", "", "Default assignee and comment author")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("log-level", "", "Log level: trace, debug, info, warn or error")

	rootCmd.Flags().StringVar(&pathFlag, "path", route.Projects, "Initial route, e.g. /projects/<id> or /projects/create")

	rootCmd.AddCommand(projectsCmd(), showCmd(), configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is everything a command needs once configuration is loaded.
type env struct {
	cfg     *config.Config
	log     *logrus.Logger
	gateway *gql.Gateway
	close   func() error
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(config.Options{File: configFlag, Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	client := gql.New(gql.Options{
		Endpoint:  cfg.APIURL,
		OrgSlug:   cfg.OrgSlug,
		Timeout:   cfg.Timeout,
		ListShape: gql.ListShape(cfg.ListShape),
		Logger:    logger,
	})
	gateway := gql.NewGateway(client, store.New(), cfg.CacheTTL, logger)

	logger.WithFields(logrus.Fields{
		"api_url":    cfg.APIURL,
		"org":        cfg.OrgSlug,
		"list_shape": cfg.ListShape,
	}).Info("starting")

	return &env{cfg: cfg, log: logger, gateway: gateway, close: closeLog}, nil
}

func run(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewAppModel(ctx, tui.Deps{
		Gateway:     e.gateway,
		Log:         e.log,
		AuthorEmail: e.cfg.AuthorEmail,
		ProjectURL:  e.cfg.ProjectURL,
	}, pathFlag)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	// Store writes happen inside commands, off the event loop, so Send
	// cannot deadlock against Update.
	unsubscribe := e.gateway.Store().Subscribe(func(c store.Change) {
		p.Send(tui.CacheChangedMsg{Change: c})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// signalContext cancels on interrupt so non-interactive commands stop
// waiting on the network.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
