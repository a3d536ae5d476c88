package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yulian302/lfusys-services-requests/lock"
	"github.com/Yulian302/lfusys-services-requests/storage"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

const storageMaintenanceLock = "storage:maintenance"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "requests",
		Short:        "Resumable chunked upload service",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newGCCmd())
	root.AddCommand(newStorageCmd())

	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC server and background workers",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := SetupApp(ctx)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Run()
	}()

	select {
	case <-ctx.Done():
		app.Logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			app.Logger.Error("grpc server stopped", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ServiceConfig.ShutdownTimeout)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

// withApp runs fn against a fully wired application without starting the
// server or background workers.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := SetupApp(ctx)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		app.Shutdown(shutdownCtx)
	}()

	return fn(ctx, app)
}

func newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Delete expired requests and their blobs once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				n, err := app.Services.Sweeper.RunOnce(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired requests\n", n)
				return nil
			})
		},
	}
}

func newStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Storage backend maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List committed blobs of every configured engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				for _, e := range app.Services.Storage.Engines() {
					ids, err := e.List(ctx)
					if err != nil {
						return fmt.Errorf("list %s: %w", e.Name(), err)
					}
					for _, id := range ids {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Name(), id)
					}
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every blob of the current storage generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return maintainStorage(cmd, "clear", storage.Engine.ClearStorage)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rotate",
		Short: "Switch every engine to a fresh, empty storage generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return maintainStorage(cmd, "rotate", storage.Engine.SwitchToFreshStorage)
		},
	})

	return cmd
}

func maintainStorage(cmd *cobra.Command, action string, op func(storage.Engine, context.Context) error) error {
	return withApp(cmd, func(ctx context.Context, app *App) error {
		return lock.WithLock(ctx, app.Services.Locker, storageMaintenanceLock, func(ctx context.Context) error {
			for _, e := range app.Services.Storage.Engines() {
				if err := op(e, ctx); err != nil {
					return fmt.Errorf("%s %s: %w", action, e.Name(), err)
				}
				app.Logger.Info("storage maintenance done", "action", action, "engine", e.Name())
			}
			return nil
		})
	})
}
