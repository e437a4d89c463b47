package ledger

import (
	"context"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/testutil"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AddCategory(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	id, err := l.AddCategory(ctx, "  Pets  ", model.TransactionTypeExpense)
	require.NoError(t, err)

	category, err := l.GetCategory(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "Pets", category.Name)
	assert.Equal(t, model.TransactionTypeExpense, category.Type)

	_, err = l.AddCategory(ctx, "Pets", model.TransactionTypeIncome)
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = l.AddCategory(ctx, "P", model.TransactionTypeExpense)
	assert.True(t, validation.HasCode(err, validation.CategoryNameTooShort))

	_, err = l.AddCategory(ctx, "Refunds", "transfer")
	assert.True(t, validation.HasCode(err, validation.TypeInvalid))
}

func TestLedger_DeleteCategory(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	id, err := l.AddCategory(ctx, "Hobbies", model.TransactionTypeExpense)
	require.NoError(t, err)

	txnID, err := l.Add(ctx, NewTransaction{
		Type: model.TransactionTypeExpense, Amount: decimal.NewFromInt(15), CategoryID: &id,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, l.DeleteCategory(ctx, id), ErrCategoryInUse)

	require.NoError(t, l.Delete(ctx, txnID))
	require.NoError(t, l.DeleteCategory(ctx, id))

	category, err := l.GetCategory(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, category)

	assert.ErrorIs(t, l.DeleteCategory(ctx, id), ErrCategoryNotFound)
}

func TestLedger_GetCategoryByName(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	category, err := l.GetCategoryByName(ctx, "food & dining")
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, testutil.CategoryID(t, store, "Food & Dining"), category.ID)

	missing, err := l.GetCategoryByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLedger_ListCategories(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	all, err := l.ListCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(model.DefaultCategories))
	assert.Equal(t, model.TransactionTypeExpense, all[0].Type)
	assert.Equal(t, "Bills & Utilities", all[0].Name)

	income := model.TransactionTypeIncome
	incomeOnly, err := l.ListCategories(ctx, &income)
	require.NoError(t, err)
	require.Len(t, incomeOnly, 6)
	for _, c := range incomeOnly {
		assert.Equal(t, model.TransactionTypeIncome, c.Type)
	}
	assert.Equal(t, "Business", incomeOnly[0].Name)
}
