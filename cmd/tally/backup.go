package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Aliases: []string{"checkpoint"},
		Short:   "Manage database checkpoints",
		Long: `Create, list, restore and delete point-in-time copies of the ledger database.

Checkpoints live in a "checkpoints" directory next to the database file.`,
		Example: `  tally backup create --tag pre-2024-import
  tally backup list
  tally backup restore pre-2024-import`,
	}

	cmd.AddCommand(createBackupCmd())
	cmd.AddCommand(listBackupsCmd())
	cmd.AddCommand(restoreBackupCmd())
	cmd.AddCommand(deleteBackupCmd())

	return cmd
}

// withCheckpoints opens the database and hands its checkpoint manager to fn.
func withCheckpoints(cmd *cobra.Command, fn func(*storage.CheckpointManager) error) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}

	manager, err := store.NewCheckpointManager()
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}

	// Closing twice is harmless, which matters after a restore.
	defer func() { _ = store.Close() }()
	return fn(manager)
}

func createBackupCmd() *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				info, err := manager.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s Created checkpoint %s (%s)\n",
					cli.SuccessStyle.Render("✓"),
					cli.InfoStyle.Render(info.ID),
					formatFileSize(info.FileSize))
				if info.Description != "" {
					fmt.Fprintf(out, "  Description: %s\n", info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "checkpoint name (generated if empty)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the checkpoint is for")

	return cmd
}

func listBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checkpoints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(checkpoints) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("No checkpoints found."))
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, strings.Join([]string{
					cli.BoldStyle.Render("NAME"),
					cli.BoldStyle.Render("CREATED"),
					cli.BoldStyle.Render("SIZE"),
					cli.BoldStyle.Render("TRANSACTIONS"),
					cli.BoldStyle.Render("CATEGORIES"),
					cli.BoldStyle.Render("TYPE"),
				}, "\t"))
				for _, cp := range checkpoints {
					typeLabel := "manual"
					if cp.IsAuto {
						typeLabel = "auto"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
						cp.ID,
						cp.CreatedAt.Local().Format("2006-01-02 15:04"),
						formatFileSize(cp.FileSize),
						cp.Transactions(),
						cp.Categories(),
						typeLabel)
				}
				return w.Flush()
			})
		},
	}
}

func restoreBackupCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint-id>",
		Short: "Replace the database with a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id := args[0]

			return withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				info, err := manager.Get(ctx, id)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s This will replace your current database with checkpoint %s.\n",
					cli.WarningStyle.Render(cli.WarningIcon), cli.InfoStyle.Render(id))
				fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				if info.Description != "" {
					fmt.Fprintf(out, "  Description: %s\n", info.Description)
				}

				ok, err := confirmed(cmd, confirm, "Continue?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.SubtleStyle.Render("Restore canceled."))
					return nil
				}

				if err := manager.Restore(ctx, id); err != nil {
					return fmt.Errorf("failed to restore checkpoint: %w", err)
				}

				fmt.Fprintf(out, "%s Restored from checkpoint %s\n", cli.SuccessStyle.Render("✓"), cli.InfoStyle.Render(id))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "restore without asking")

	return cmd
}

func deleteBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				if err := manager.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to delete checkpoint: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted checkpoint %s\n", cli.SuccessStyle.Render("✓"), cli.InfoStyle.Render(args[0]))
				return nil
			})
		},
	}
}
