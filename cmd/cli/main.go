package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/devmarket/cmd/cli/internal/commands"
	"github.com/wolfeidau/devmarket/internal/config"
	"github.com/wolfeidau/devmarket/internal/logger"
	"github.com/wolfeidau/devmarket/internal/telemetry"
)

var (
	version = "dev"
	cli     struct {
		Home        commands.HomeCmd        `cmd:"" default:"withargs" help:"Show the landing view"`
		Open        commands.OpenCmd        `cmd:"" help:"Open a view by path"`
		Signup      commands.SignupCmd      `cmd:"" help:"Create an account"`
		Login       commands.LoginCmd       `cmd:"" help:"Log in"`
		Logout      commands.LogoutCmd      `cmd:"" help:"Log out"`
		Whoami      commands.WhoamiCmd      `cmd:"" help:"Show the current session"`
		Jobs        commands.JobsCmd        `cmd:"" help:"Browse and manage job postings"`
		Client      commands.ClientCmd      `cmd:"" aliases:"business" help:"Business dashboard"`
		Developer   commands.DeveloperCmd   `cmd:"" help:"Developer dashboard"`
		Admin       commands.AdminCmd       `cmd:"" help:"Admin dashboard"`
		Professions commands.ProfessionsCmd `cmd:"" help:"Professions and their learning content"`

		Config         string        `help:"Path to a config file." type:"path" env:"DEVMARKET_CONFIG"`
		APIURL         string        `help:"API base URL." name:"api-url" default:"${api_url}" env:"DEVMARKET_API_URL"`
		SessionBackend string        `help:"Session backend: file or redis." name:"session-backend" enum:"file,redis" default:"${session_backend}"`
		SessionDir     string        `help:"Directory for the file session backend." name:"session-dir" default:"${session_dir}"`
		RedisAddr      string        `help:"Redis address for the redis session backend." name:"redis-addr" default:"${redis_addr}"`
		RedisPassword  string        `help:"Redis password." name:"redis-password" default:"${redis_password}" env:"DEVMARKET_REDIS_PASSWORD"`
		SessionTTL     time.Duration `help:"How long a stored session stays valid." name:"session-ttl" default:"${session_ttl}"`
		PollInterval   time.Duration `help:"Refresh interval for --watch." name:"poll-interval" default:"${poll_interval}"`
		RequestTimeout time.Duration `help:"Timeout for each API request." name:"request-timeout" default:"${request_timeout}"`
		RetryMaxTries  uint          `help:"Attempts for idempotent API requests." name:"retry-max-tries" default:"${retry_max_tries}"`
		CacheDir       string        `help:"Directory for the HTTP response cache, in memory when empty." name:"cache-dir" default:"${cache_dir}"`
		Tracing        bool          `help:"Export traces and metrics over OTLP." default:"${tracing}"`
		Debug          bool          `help:"Enable debug mode."`
		Version        kong.VersionFlag
	}
)

func main() {
	settings, err := config.Load(config.PathFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "devmarket: %v\n", err)
		os.Exit(1)
	}

	vars := settings.Vars()
	vars["version"] = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("devmarket"),
		kong.Description("Connect developers with businesses from the terminal."),
		vars,
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	shutdown := telemetry.ShutdownFunc(func(context.Context) error { return nil })
	if cli.Tracing {
		if shutdown, err = telemetry.Init(ctx, "devmarket", version); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize telemetry")
		}
	}

	err = cmd.Run(&commands.Globals{
		Debug:          cli.Debug,
		Version:        version,
		APIURL:         cli.APIURL,
		SessionBackend: cli.SessionBackend,
		SessionDir:     cli.SessionDir,
		RedisAddr:      cli.RedisAddr,
		RedisPassword:  cli.RedisPassword,
		SessionTTL:     cli.SessionTTL,
		PollInterval:   cli.PollInterval,
		RequestTimeout: cli.RequestTimeout,
		RetryMaxTries:  cli.RetryMaxTries,
		CacheDir:       cli.CacheDir,
		Tracing:        cli.Tracing,
	})
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if serr := shutdown(shutdownCtx); serr != nil {
		log.Warn().Err(serr).Msg("failed to flush telemetry")
	}
	cancel()

	cmd.FatalIfErrorf(err)
}
