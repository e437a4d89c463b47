package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
	"github.com/gin-gonic/gin"
)

const (
	dashboardRecent        = 10
	dashboardTopCategories = 5
)

type dashboardResponse struct {
	Today              *model.TransactionSummary `json:"today"`
	Week               *model.TransactionSummary `json:"week"`
	Month              *model.TransactionSummary `json:"month"`
	RecentTransactions []model.Transaction       `json:"recent_transactions"`
	TopCategories      []model.CategorySummary   `json:"top_categories"`
}

func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	today := s.resolver.Today()
	week := dates.WeekRange(today)
	month := dates.MonthRange(today)

	var resp dashboardResponse
	var err error

	if resp.Today, err = s.window(ctx, dates.Range{Start: today, End: today}); err != nil {
		respondWithError(c, err)
		return
	}
	if resp.Week, err = s.window(ctx, week); err != nil {
		respondWithError(c, err)
		return
	}
	if resp.Month, err = s.window(ctx, month); err != nil {
		respondWithError(c, err)
		return
	}

	recent, err := s.ledger.Recent(ctx, dashboardRecent)
	if err != nil {
		respondWithError(c, err)
		return
	}
	resp.RecentTransactions = nonNil(recent)

	top, err := s.ledger.CategorySummary(ctx, &month.Start, &month.End, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if len(top) > dashboardTopCategories {
		top = top[:dashboardTopCategories]
	}
	resp.TopCategories = nonNil(top)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) window(ctx context.Context, r dates.Range) (*model.TransactionSummary, error) {
	return s.ledger.Summarize(ctx, &r.Start, &r.End)
}

// summary totals an optional window, with the category breakdown next to it.
func (s *Server) summary(c *gin.Context) {
	f, err := s.filter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	totals, err := s.ledger.Summarize(ctx, f.Start, f.End)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := s.ledger.CategorySummary(ctx, f.Start, f.End, f.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    totals,
		"categories": nonNil(categories),
	})
}

// getReport generates any report kind. format=text returns the rendered
// report as plain text instead of JSON.
func (s *Server) getReport(c *gin.Context) {
	kind, err := report.ParseKind(c.Param("kind"))
	if err != nil {
		respondWithError(c, invalidInput(err.Error()))
		return
	}

	req, err := s.reportRequest(c, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rep, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if cr, ok := rep.(*report.CategoryReport); ok && !cr.Found {
		respondWithError(c, notFound(CodeCategoryNotFound, "Category not found"))
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, report.Text(rep, report.WithCurrency(s.cfg.Currency))+"\n")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":   rep.Kind(),
		"report": rep,
	})
}

func (s *Server) reportRequest(c *gin.Context, kind report.Kind) (report.Request, error) {
	req := report.Request{Kind: kind}

	optional := func(key string) (*time.Time, error) {
		raw := c.Query(key)
		if raw == "" {
			return nil, nil
		}
		d, err := s.resolver.ParseDate(raw, true)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	var err error
	if req.Date, err = optional("date"); err != nil {
		return req, err
	}
	if req.Start, err = optional("start"); err != nil {
		return req, err
	}
	if req.End, err = optional("end"); err != nil {
		return req, err
	}
	if req.CompareStart, err = optional("compare_start"); err != nil {
		return req, err
	}
	if req.CompareEnd, err = optional("compare_end"); err != nil {
		return req, err
	}

	if kind == report.KindCategory {
		id, err := queryInt64(c, "category_id")
		if err != nil {
			return req, err
		}
		if id == nil {
			return req, report.ErrMissingCategory
		}
		req.CategoryID = *id
	}
	return req, nil
}
