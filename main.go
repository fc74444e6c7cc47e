package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/chirpy/assets"
	"github.com/robalobadob/chirpy/internal/auth"
	"github.com/robalobadob/chirpy/internal/chirps"
	"github.com/robalobadob/chirpy/internal/config"
	"github.com/robalobadob/chirpy/internal/httpserver"
	"github.com/robalobadob/chirpy/internal/metrics"
	"github.com/robalobadob/chirpy/internal/password"
	"github.com/robalobadob/chirpy/internal/profanity"
	"github.com/robalobadob/chirpy/internal/store"
	"github.com/robalobadob/chirpy/internal/token"
	"github.com/robalobadob/chirpy/internal/users"
	"github.com/robalobadob/chirpy/internal/webhook"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.LogLevel, cfg.LogFormat)

	rootCmd := &cobra.Command{
		Use:          "chirpy",
		Short:        "Chirpy backend server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, `store path, or "`+config.MemoryDBPath+`" for an in-memory store`)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "print the stored form of a password (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}
			hash, err := password.Hash(plain)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}

	rootCmd.AddCommand(serveCmd, hashCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("chirpy exited")
	}
}

func setupLogging(level, format string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func passwordArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("empty password")
	}
	return line, nil
}

func openStore(path string) (store.Store, error) {
	if path == config.MemoryDBPath {
		return store.NewMemory(), nil
	}
	fs, err := store.NewFileStore(path)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	st, err := openStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	filter, err := profanity.Load(cfg.ProfanityFile)
	if err != nil {
		return fmt.Errorf("load profanity list: %w", err)
	}
	app, err := assets.App()
	if err != nil {
		return fmt.Errorf("load app assets: %w", err)
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; logins will fail")
	}
	if cfg.PolkaKey == "" {
		log.Warn().Msg("POLKA_KEY is not set; webhooks will be rejected")
	}

	issuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	srv := httpserver.New(httpserver.Deps{
		Users:          users.NewService(st, issuer),
		Chirps:         chirps.NewService(st, filter),
		Guard:          auth.NewGuard(issuer, st),
		Polka:          webhook.NewPolka(cfg.PolkaKey, st),
		Hits:           metrics.NewCounter(httpserver.MetricsPath),
		App:            app,
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
	})

	log.Info().
		Str("addr", cfg.Addr).
		Str("db", cfg.DBPath).
		Int("profane_words", filter.Len()).
		Dur("token_ttl", issuer.DefaultTTL()).
		Msg("starting chirpy")
	return srv.Start(ctx, cfg.Addr)
}
