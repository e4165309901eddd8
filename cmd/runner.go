package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crossfade/internal/mix"
	"github.com/desertthunder/crossfade/internal/server"
	"github.com/desertthunder/crossfade/internal/services"
	"github.com/desertthunder/crossfade/internal/session"
	"github.com/desertthunder/crossfade/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	httpClient *http.Client
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		httpClient: opts.HTTPClient,
	}
}

// writePlain writes formatted text to the runner's output writer.
func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		serveCommand(r),
		initCommand(r),
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the backend HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.Serve,
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Destination for the config file",
				Value:   "config.toml",
			},
		},
		Action: r.Init,
	}
}

// Serve assembles the service graph and runs the HTTP server until the
// process is signalled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String("config"); path != "" {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return err
		}
		r.config = config
	}

	spotify, err := services.NewSpotifyService(map[string]string{
		"client_id":     r.config.Credentials.Spotify.ClientID,
		"client_secret": r.config.Credentials.Spotify.ClientSecret,
		"redirect_uri":  r.config.Credentials.Spotify.RedirectURI,
	})
	if err != nil {
		return fmt.Errorf("spotify credentials: %w", err)
	}

	planner := services.NewPlannerService(r.config.Planner.URL, r.httpClient)

	codec, err := session.NewCodec([]byte(r.config.Session.Secret), nil, r.config.Session.Secure)
	if err != nil {
		return fmt.Errorf("session codec: %w", err)
	}

	srv, err := server.New(server.Opts{
		Config:       r.config,
		Catalog:      spotify,
		Orchestrator: mix.NewOrchestrator(spotify, planner),
		Codec:        codec,
		Logger:       r.logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: srv.Router(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("shutdown failed", "error", err)
		}
	}()

	r.logger.Info("listening", "addr", httpServer.Addr, "origin", r.config.Server.ClientOrigin)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Init writes the embedded example config to disk.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlain("Created %s\n", path)
}
