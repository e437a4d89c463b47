package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/validation"
)

const categoryColumns = `id, name, type, created_at`

// AddCategory creates a category and returns its id.
func (l *Ledger) AddCategory(ctx context.Context, name string, typ model.TransactionType) (int64, error) {
	name, err := validation.CheckCategoryName(name)
	if err != nil {
		return 0, err
	}
	typ, err = validation.ParseType(string(typ))
	if err != nil {
		return 0, err
	}

	var id int64
	err = l.store.WithTx(ctx, func(q service.Querier) error {
		var existing int64
		err := q.QueryRow(ctx, `SELECT id FROM categories WHERE name = ?`, name).Scan(&existing)
		switch {
		case err == nil:
			return ErrCategoryExists
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to check category name: %w", err)
		}

		id, err = q.Insert(ctx, `INSERT INTO categories (name, type) VALUES (?, ?)`, name, string(typ))
		if err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Added category", "id", id, "name", name, "type", typ)
	return id, nil
}

// DeleteCategory removes a category that no transaction references.
func (l *Ledger) DeleteCategory(ctx context.Context, id int64) error {
	err := l.store.WithTx(ctx, func(q service.Querier) error {
		category, err := getCategory(ctx, q, id)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}

		var usage int
		if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = ?`, id).Scan(&usage); err != nil {
			return fmt.Errorf("failed to count category usage: %w", err)
		}
		if usage > 0 {
			return ErrCategoryInUse
		}

		if _, err := q.Update(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted category", "id", id)
	return nil
}

// GetCategory returns the category with the given id, or nil if there is none.
func (l *Ledger) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return getCategory(ctx, l.store, id)
}

// GetCategoryByName looks a category up ignoring case. It returns nil if there is none.
func (l *Ledger) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	row := l.store.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ? COLLATE NOCASE ORDER BY id LIMIT 1`, name)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return category, nil
}

// ListCategories returns categories ordered by type then name, optionally of one type only.
func (l *Ledger) ListCategories(ctx context.Context, typ *model.TransactionType) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	var args []any
	if typ != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*typ))
	}
	query += ` ORDER BY type, name`

	rows, err := l.store.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var categories []model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("loaded categories", "count", len(categories))
	return categories, nil
}

func getCategory(ctx context.Context, q service.Querier, id int64) (*model.Category, error) {
	row := q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// requireCategory loads a category and checks that it belongs to typ.
func requireCategory(ctx context.Context, q service.Querier, id int64, typ model.TransactionType) (*model.Category, error) {
	category, err := getCategory(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if category.Type != typ {
		return nil, &CategoryMismatchError{CategoryType: category.Type, TransactionType: typ}
	}
	return category, nil
}
