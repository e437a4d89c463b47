package api

import (
	"encoding/json"
	"net/http"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit = 20
	maxPageSize        = validation.MaxLimit
)

type createTransactionRequest struct {
	CategoryID  *int64          `json:"category_id"`
	Type        string          `json:"type" binding:"required,txtype"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount" binding:"required"`
}

// updateTransactionRequest mirrors ledger.TransactionUpdate. A category_id
// of zero or less detaches the category, as does clear_category.
type updateTransactionRequest struct {
	Type          *string         `json:"type" binding:"omitempty,txtype"`
	Description   *string         `json:"description"`
	Date          *string         `json:"date"`
	CategoryID    *int64          `json:"category_id"`
	Amount        json.RawMessage `json:"amount"`
	ClearCategory bool            `json:"clear_category"`
}

func (s *Server) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	in, err := s.newTransaction(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := s.ledger.Add(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := s.ledger.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction added successfully",
		"transaction": tx,
	})
}

func (s *Server) newTransaction(req createTransactionRequest) (ledger.NewTransaction, error) {
	typ, err := validation.ParseType(req.Type)
	if err != nil {
		return ledger.NewTransaction{}, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return ledger.NewTransaction{}, err
	}
	description, err := validation.CheckDescription(validation.Sanitize(req.Description))
	if err != nil {
		return ledger.NewTransaction{}, err
	}

	in := ledger.NewTransaction{
		Type:        typ,
		Amount:      amount,
		Description: description,
		CategoryID:  req.CategoryID,
	}
	if req.Date != "" {
		date, err := s.resolver.ParseDate(req.Date, false)
		if err != nil {
			return ledger.NewTransaction{}, err
		}
		in.Date = &date
	}
	return in, nil
}

func (s *Server) getTransaction(c *gin.Context) {
	id, err := pathID(c, "Transaction ID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := s.ledger.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if tx == nil {
		respondWithError(c, notFound(CodeTransactionNotFound, "Transaction not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

func (s *Server) updateTransaction(c *gin.Context) {
	id, err := pathID(c, "Transaction ID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	u, err := s.transactionUpdate(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := s.ledger.Update(c.Request.Context(), id, u); err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := s.ledger.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully",
		"transaction": tx,
	})
}

func (s *Server) transactionUpdate(req updateTransactionRequest) (ledger.TransactionUpdate, error) {
	u := ledger.TransactionUpdate{
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
	}

	if req.Type != nil {
		typ, err := validation.ParseType(*req.Type)
		if err != nil {
			return u, err
		}
		u.Type = &typ
	}
	if len(req.Amount) > 0 {
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return u, err
		}
		u.Amount = &amount
	}
	if req.Description != nil {
		description := validation.Sanitize(*req.Description)
		u.Description = &description
	}
	if req.Date != nil {
		date, err := s.resolver.ParseDate(*req.Date, false)
		if err != nil {
			return u, err
		}
		u.Date = &date
	}
	return u, nil
}

func (s *Server) deleteTransaction(c *gin.Context) {
	id, err := pathID(c, "Transaction ID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := s.ledger.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

func (s *Server) listTransactions(c *gin.Context) {
	f, err := s.filter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txs, err := s.ledger.List(c.Request.Context(), f)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": nonNil(txs),
		"count":        len(txs),
	})
}

// filter reads start, end, type, category_id, limit and offset from the query.
func (s *Server) filter(c *gin.Context) (ledger.Filter, error) {
	var f ledger.Filter

	start, end := c.Query("start"), c.Query("end")
	switch {
	case start != "" && end != "":
		rng, err := s.resolver.ParseRange(start, end)
		if err != nil {
			return f, err
		}
		f.Start, f.End = &rng.Start, &rng.End
	case start != "":
		d, err := s.resolver.ParseDate(start, true)
		if err != nil {
			return f, validation.Wrap(err, "Start date error: ")
		}
		f.Start = &d
	case end != "":
		d, err := s.resolver.ParseDate(end, true)
		if err != nil {
			return f, validation.Wrap(err, "End date error: ")
		}
		f.End = &d
	}

	if raw := c.Query("type"); raw != "" {
		typ, err := validation.ParseType(raw)
		if err != nil {
			return f, err
		}
		f.Type = &typ
	}

	categoryID, err := queryInt64(c, "category_id")
	if err != nil {
		return f, err
	}
	f.CategoryID = categoryID

	if f.Limit, err = validation.ParseLimit(c.Query("limit"), maxPageSize); err != nil {
		return f, err
	}
	if f.Offset, err = queryInt(c, "offset", 0); err != nil {
		return f, err
	}
	return f, nil
}

func (s *Server) search(c *gin.Context) {
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := validation.ParseLimit(raw, validation.MaxLimit)
		if err != nil {
			respondWithError(c, err)
			return
		}
		limit = n
	}

	txs, err := s.ledger.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":        c.Query("q"),
		"transactions": nonNil(txs),
		"count":        len(txs),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
