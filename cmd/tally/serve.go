package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/api"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var backupInterval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger and reports over HTTP",
		Long: `Start the JSON API under /api.

The server stops gracefully on SIGINT or SIGTERM. With --backup-interval
an automatic checkpoint of the database is taken on that schedule.`,
		Example: `  tally serve --addr :9000
  tally serve --backup-interval 6h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := api.DefaultConfig()
			cfg.Addr = viper.GetString("server.addr")
			cfg.Currency = a.currency
			cfg.ReadTimeout = viper.GetDuration("server.read_timeout")
			cfg.WriteTimeout = viper.GetDuration("server.write_timeout")
			cfg.ShutdownTimeout = viper.GetDuration("server.shutdown_timeout")

			server := api.NewServer(a.ledger, a.reports, a.resolver, cfg)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return server.Run(ctx)
			})
			if backupInterval > 0 {
				manager, err := a.store.NewCheckpointManager()
				if err != nil {
					return fmt.Errorf("failed to create checkpoint manager: %w", err)
				}
				g.Go(func() error {
					return autoBackup(ctx, manager, backupInterval)
				})
			}

			slog.Info("Serving ledger API", "addr", cfg.Addr)
			return g.Wait()
		},
	}

	cmd.Flags().String("addr", "", "listen address (default: :8080)")
	cmd.Flags().DurationVar(&backupInterval, "backup-interval", 0, "take an automatic checkpoint this often (0 disables)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

// autoBackup checkpoints the database every interval until ctx is done.
// A failed checkpoint is logged and retried on the next tick.
func autoBackup(ctx context.Context, manager *storage.CheckpointManager, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := manager.AutoCheckpoint(ctx, "serve")
			if err != nil {
				common.LogError(err, "Automatic checkpoint failed", common.Fields{"interval": interval.String()})
				continue
			}
			slog.Info("Created automatic checkpoint", "id", info.ID, "size", formatFileSize(info.FileSize))
		}
	}
}
