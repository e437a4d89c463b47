package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionBody struct {
	Message     string            `json:"message"`
	Transaction model.Transaction `json:"transaction"`
}

type listBody struct {
	Transactions []model.Transaction `json:"transactions"`
	Count        int                 `json:"count"`
}

func TestCreateTransaction(t *testing.T) {
	env := newTestEnv(t)
	food := testutil.CategoryID(t, env.store, "Food & Dining")

	t.Run("created with string amount", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transactions",
			fmt.Sprintf(`{"type":"expense","amount":"$1,234.50","category_id":%d,"description":"Groceries","date":"2024-03-10"}`, food))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decode[transactionBody](t, rec)
		assert.Equal(t, "Transaction added successfully", body.Message)
		assert.Equal(t, "1234.50", body.Transaction.Amount.StringFixed(2))
		assert.Equal(t, "Food & Dining", body.Transaction.CategoryName)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), body.Transaction.Date.UTC())
	})

	t.Run("numeric amount and default date", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transactions", `{"type":"INCOME","amount":99.999}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decode[transactionBody](t, rec)
		assert.Equal(t, model.TransactionTypeIncome, body.Transaction.Type)
		assert.Equal(t, "100.00", body.Transaction.Amount.StringFixed(2))
		assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), body.Transaction.Date.UTC())
	})

	tests := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{
			name:    "missing type",
			body:    `{"amount":"5"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Transaction type is required",
		},
		{
			name:    "bad type",
			body:    `{"type":"transfer","amount":"5"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Transaction type must be 'expense' or 'income'",
		},
		{
			name:    "missing amount",
			body:    `{"type":"expense"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Amount is required",
		},
		{
			name:    "zero amount",
			body:    `{"type":"expense","amount":0}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Amount must be greater than zero",
		},
		{
			name:    "huge amount",
			body:    `{"type":"expense","amount":"1000000.01"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Amount cannot exceed $1,000,000",
		},
		{
			name:    "garbage amount",
			body:    `{"type":"expense","amount":"abc"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Invalid amount format. Please enter a valid number.",
		},
		{
			name:    "future date",
			body:    `{"type":"expense","amount":"5","date":"tomorrow"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Date cannot be in the future",
		},
		{
			name:    "unsafe description",
			body:    `{"type":"expense","amount":"5","description":"<script>"}`,
			status:  http.StatusBadRequest,
			code:    CodeValidation,
			message: "Description contains invalid characters",
		},
		{
			name:    "category of the other type",
			body:    fmt.Sprintf(`{"type":"income","amount":"5","category_id":%d}`, food),
			status:  http.StatusBadRequest,
			code:    CodeCategoryMismatch,
			message: "Category type (expense) doesn't match transaction type (income)",
		},
		{
			name:   "unknown category",
			body:   `{"type":"expense","amount":"5","category_id":9999}`,
			status: http.StatusNotFound,
			code:   CodeCategoryNotFound,
		},
		{
			name:   "malformed json",
			body:   `{"type":`,
			status: http.StatusBadRequest,
			code:   CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/transactions", tt.body)
			assertError(t, rec, tt.status, tt.code, tt.message)
		})
	}
}

func TestGetUpdateDeleteTransaction(t *testing.T) {
	env := newTestEnv(t)
	food := testutil.CategoryID(t, env.store, "Food & Dining")
	salary := testutil.CategoryID(t, env.store, "Salary")
	ids := testutil.InsertRows(t, env.store,
		testutil.Row{Type: "expense", Amount: "12.50", CategoryID: &food, Description: "Lunch", Date: "2024-03-12"})
	path := fmt.Sprintf("/api/transactions/%d", ids[0])

	t.Run("get", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Lunch", decode[transactionBody](t, rec).Transaction.Description)
	})

	t.Run("get missing", func(t *testing.T) {
		assertError(t, env.do(t, http.MethodGet, "/api/transactions/9999", ""),
			http.StatusNotFound, CodeTransactionNotFound, "Transaction not found")
	})

	t.Run("get with bad id", func(t *testing.T) {
		assertError(t, env.do(t, http.MethodGet, "/api/transactions/abc", ""),
			http.StatusBadRequest, CodeValidation, "Transaction ID must be a valid number")
	})

	t.Run("empty update", func(t *testing.T) {
		assertError(t, env.do(t, http.MethodPut, path, `{}`),
			http.StatusBadRequest, CodeNoUpdates, "No updates provided")
	})

	t.Run("type change with mismatched category is refused", func(t *testing.T) {
		assertError(t, env.do(t, http.MethodPut, path, `{"type":"income"}`),
			http.StatusBadRequest, CodeCategoryMismatch, "")
	})

	t.Run("type change with matching category", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, path, fmt.Sprintf(`{"type":"income","category_id":%d,"amount":"20"}`, salary))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[transactionBody](t, rec)
		assert.Equal(t, model.TransactionTypeIncome, body.Transaction.Type)
		assert.Equal(t, "20.00", body.Transaction.Amount.StringFixed(2))
		assert.Equal(t, "Salary", body.Transaction.CategoryName)
	})

	t.Run("zero category id clears", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, path, `{"category_id":0}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Nil(t, decode[transactionBody](t, rec).Transaction.CategoryID)
	})

	t.Run("delete", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assertError(t, env.do(t, http.MethodDelete, path, ""),
			http.StatusNotFound, CodeTransactionNotFound, "")
	})
}

func TestListTransactions(t *testing.T) {
	env := newTestEnv(t)
	food := testutil.CategoryID(t, env.store, "Food & Dining")
	testutil.InsertRows(t, env.store,
		testutil.Row{Type: "expense", Amount: "10", CategoryID: &food, Description: "Breakfast", Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "20", Description: "Taxi", Date: "2024-03-05"},
		testutil.Row{Type: "income", Amount: "500", Description: "Paycheck", Date: "2024-03-10"},
	)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{name: "all", query: "", count: 3},
		{name: "by type", query: "?type=expense", count: 2},
		{name: "by category", query: fmt.Sprintf("?category_id=%d", food), count: 1},
		{name: "by range", query: "?start=2024-03-02&end=2024-03-10", count: 2},
		{name: "open start", query: "?start=2024-03-05", count: 2},
		{name: "limit", query: "?limit=1", count: 1},
		{name: "offset", query: "?limit=2&offset=2", count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/transactions"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			body := decode[listBody](t, rec)
			assert.Equal(t, tt.count, body.Count)
			assert.Len(t, body.Transactions, tt.count)
		})
	}

	t.Run("reversed range", func(t *testing.T) {
		assertError(t, env.do(t, http.MethodGet, "/api/transactions?start=2024-03-10&end=2024-03-01", ""),
			http.StatusBadRequest, CodeValidation, "Start date must be before or equal to end date")
	})

	t.Run("bad start", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/transactions?start=nonsense", "")
		assertError(t, rec, http.StatusBadRequest, CodeValidation, "")
		assert.Contains(t, decode[errorBody](t, rec).Error.Message, "Start date error: ")
	})

	t.Run("empty result is an array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/transactions?start=2020-01-01&end=2020-01-02", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"transactions":[]`)
	})
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	testutil.InsertRows(t, env.store,
		testutil.Row{Type: "expense", Amount: "4.50", Description: "Coffee", Date: "2024-03-01"},
		testutil.Row{Type: "expense", Amount: "5.00", Description: "coffee beans", Date: "2024-03-02"},
		testutil.Row{Type: "expense", Amount: "30.00", Description: "Books", Date: "2024-03-03"},
	)

	rec := env.do(t, http.MethodGet, "/api/search?q=COFFEE", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[listBody](t, rec).Count)

	rec = env.do(t, http.MethodGet, "/api/search?q=coffee&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[listBody](t, rec).Count)

	assertError(t, env.do(t, http.MethodGet, "/api/search?q=c", ""),
		http.StatusBadRequest, CodeValidation, "Search query must be at least 2 characters long")
}
