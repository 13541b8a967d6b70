package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-org-service/auth"
	"github.com/jrsteele09/go-org-service/internal/config"
	"github.com/jrsteele09/go-org-service/mongodb"
	"github.com/jrsteele09/go-org-service/organizations"
	"github.com/jrsteele09/go-org-service/server"
	"github.com/jrsteele09/go-org-service/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	initLogging(c)
	displayAppname(c.GetAppName())

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := mongodb.Connect(connectCtx, c)
	if err != nil {
		return fmt.Errorf("mongodb.Connect: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("store disconnect")
		}
	}()

	srv, err := buildServer(c, store)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func buildServer(c config.Config, store *mongodb.Client) (*server.Server, error) {
	orgRepo := mongodb.NewOrganizationRepo(store)
	adminRepo := mongodb.NewAdminRepo(store)
	tenantStore := mongodb.NewTenantStore(store)

	tokens := token.New(
		token.NewHMACSigner(c.GetJWTSecret()),
		token.WithIssuer(c.GetIssuer()),
		token.WithTokenExpiry(c.GetAccessTokenExpiry(), c.GetRefreshTokenExpiry()),
	)

	lifecycle, err := organizations.NewService(organizations.Repos{
		Organizations: orgRepo,
		Admins:        adminRepo,
	}, tenantStore)
	if err != nil {
		return nil, fmt.Errorf("organizations.NewService: %w", err)
	}

	sessions, err := auth.NewSessionService(auth.Repos{
		Admins:        adminRepo,
		Organizations: orgRepo,
	}, tokens)
	if err != nil {
		return nil, fmt.Errorf("auth.NewSessionService: %w", err)
	}

	return server.New(c, lifecycle, sessions, tokens, store)
}

func initLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
