package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage expense and income categories",
		Long:    `List, add and delete the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := typeFlag(typ)
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			categories, err := a.ledger.ListCategories(ctx, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No categories found. Use 'tally categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join([]string{
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("TYPE"),
				cli.BoldStyle.Render("NAME"),
			}, "\t"))
			for _, c := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Type, c.Name)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "only expense or income categories")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <expense|income> <name...>",
		Short:   "Add a category",
		Example: `  tally categories add expense Pets`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			typ, err := validation.ParseType(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.ledger.AddCategory(ctx, strings.Join(args[1:], " "), typ)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Category added successfully (ID: %d)", id)))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a category that no transaction uses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.categoryID(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			category, err := a.ledger.GetCategory(ctx, id)
			if err != nil {
				return err
			}
			if category == nil {
				return ledger.ErrCategoryNotFound
			}

			ok, err := confirmed(cmd, confirm, fmt.Sprintf("Delete category %q?", category.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Delete canceled."))
				return nil
			}

			if err := a.ledger.DeleteCategory(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("Category deleted successfully"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "delete without asking")

	return cmd
}
