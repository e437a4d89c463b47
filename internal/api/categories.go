package api

import (
	"net/http"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/gin-gonic/gin"
)

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,txtype"`
}

func (s *Server) listCategories(c *gin.Context) {
	var typ *model.TransactionType
	if raw := c.Query("type"); raw != "" {
		t, err := validation.ParseType(raw)
		if err != nil {
			respondWithError(c, err)
			return
		}
		typ = &t
	}

	categories, err := s.ledger.ListCategories(c.Request.Context(), typ)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": nonNil(categories)})
}

func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	typ, err := validation.ParseType(req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := s.ledger.AddCategory(c.Request.Context(), req.Name, typ)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := s.ledger.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category added successfully",
		"category": category,
	})
}

func (s *Server) getCategory(c *gin.Context) {
	id, err := pathID(c, "Category ID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := s.ledger.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if category == nil {
		respondWithError(c, notFound(CodeCategoryNotFound, "Category not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, err := pathID(c, "Category ID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := s.ledger.DeleteCategory(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// categorySummary returns per-category totals for an optional window and type.
func (s *Server) categorySummary(c *gin.Context) {
	id, err := pathID(c, "Category ID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	f, err := s.filter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rep, err := s.generator.Category(c.Request.Context(), id, f.Start, f.End)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !rep.Found {
		respondWithError(c, notFound(CodeCategoryNotFound, "Category not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":          rep.Category,
		"total_amount":      rep.TotalAmount,
		"average_amount":    rep.AverageAmount,
		"transaction_count": rep.TransactionCount,
		"date_range":        rep.DateRange,
	})
}
