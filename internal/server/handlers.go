package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/extract"
	"github.com/spigell/candidate-ranker/internal/model"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/storage"
	"github.com/spigell/candidate-ranker/internal/storage/dataset"
)

type extractRequest struct {
	JobDescriptionText string `json:"jobDescriptionText" binding:"required"`
}

type extractResponse struct {
	Requirements     model.RequirementSet   `json:"requirements"`
	SuggestedFilters model.RecruiterFilters `json:"suggestedFilters"`
}

type candidatesResponse struct {
	Candidates []model.Candidate `json:"candidates"`
	Total      int               `json:"total"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) rankCandidates(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req model.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request body must be valid JSON", err.Error())
		return
	}

	result, err := h.ranker.RankWithLogger(c.Request.Context(), requestLogger(c), &req)
	if err != nil {
		var verr *ranking.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(c, http.StatusBadRequest, codeInvalidRequest, "Missing required fields", gin.H{"fields": verr.Fields})
		case errors.Is(err, ranking.ErrInvalidRequest):
			respondError(c, http.StatusBadRequest, codeInvalidRequest, "Invalid request", err.Error())
		default:
			requestLogger(c).Error("ranking failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, codeInternal, "Failed to rank candidates", nil)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handlers) extractRequirements(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "Missing required fields", gin.H{"fields": []string{"jobDescriptionText"}})
		return
	}

	requirements := h.ranker.Extract(req.JobDescriptionText)
	c.JSON(http.StatusOK, extractResponse{
		Requirements:     requirements,
		SuggestedFilters: extract.SuggestFilters(requirements, req.JobDescriptionText),
	})
}

func (h *handlers) listCandidates(c *gin.Context) {
	if h.store == nil {
		respondError(c, http.StatusNotFound, codeNotFound, "No candidate store configured", nil)
		return
	}

	candidates, err := h.store.List(c.Request.Context())
	if err != nil {
		requestLogger(c).Error("listing candidates failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, "Failed to load candidates", nil)
		return
	}

	c.JSON(http.StatusOK, candidatesResponse{Candidates: candidates, Total: len(candidates)})
}

func (h *handlers) importCandidates(c *gin.Context) {
	if h.store == nil {
		respondError(c, http.StatusNotFound, codeNotFound, "No candidate store configured", nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request body is too large or unreadable", nil)
		return
	}

	saved, err := storage.Import(c.Request.Context(), h.store, body)
	if err != nil {
		var verr *dataset.ValidationError
		if errors.As(err, &verr) {
			respondError(c, http.StatusBadRequest, codeInvalidRequest, "Candidate pool is invalid", verr.Errors)
			return
		}
		requestLogger(c).Error("importing candidates failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, "Failed to save candidates", nil)
		return
	}

	c.JSON(http.StatusCreated, candidatesResponse{Candidates: saved, Total: len(saved)})
}
