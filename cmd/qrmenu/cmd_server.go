package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/qrmenu/app/routes"
	"github.com/shashiranjanraj/qrmenu/config"
	"github.com/shashiranjanraj/qrmenu/internal/kernel"
	"github.com/shashiranjanraj/qrmenu/internal/server"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

var serveMigrate bool

// qrmenu serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the menu API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		app, err := kernel.Boot(ctx, kernel.BootOptions{Migrate: serveMigrate})
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Error("closing", "error", err)
			}
		}()

		return server.Run(ctx, ":"+config.AppPort(), app.Router().Handler())
	},
}

// qrmenu registry
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Start the QR registry service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		reg, err := kernel.BootRegistry(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := reg.Close(context.Background()); err != nil {
				logger.Error("closing registry", "error", err)
			}
		}()

		return server.Run(ctx, ":"+config.RegistryPort(), reg.Router().Handler())
	},
}

// qrmenu route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List the routes of the API and the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		api := (&kernel.App{}).Router()
		reg := router.New()
		routes.RegisterRegistry(reg, nil)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "API (serve)")
		if err := printRoutes(out, api.Routes()); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nRegistry (registry)")
		return printRoutes(out, reg.Routes())
	},
}

func printRoutes(out io.Writer, infos []router.RouteInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "apply pending migrations before serving")
}
