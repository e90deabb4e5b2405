package gin

import (
	"net/http"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/scan"
	"github.com/gin-gonic/gin"
)

// scanRequest is the POST /api/v1/scans request body. Option pointers
// distinguish "not sent" from an explicit false/zero.
type scanRequest struct {
	SiteURL                string   `json:"siteUrl" binding:"required,url"`
	BusinessName           string   `json:"businessName"`
	MultiPage              *bool    `json:"enableMultiPage"`
	FollowLinks            *bool    `json:"followLinks"`
	MaxAdditionalPages     *int     `json:"maxAdditionalPages"`
	DeepScan               *bool    `json:"enableDeepScan"`
	SemanticScan           *bool    `json:"enableSemanticScan"`
	DeduplicationThreshold *float64 `json:"deduplicationThreshold"`
}

// options translates the request body into scan options, starting from
// the defaults.
func (r *scanRequest) options() scan.Options {
	opts := scan.DefaultOptions()
	if r.MultiPage != nil {
		opts.MultiPage = *r.MultiPage
	}
	if r.FollowLinks != nil {
		opts.FollowLinks = *r.FollowLinks
	}
	if r.MaxAdditionalPages != nil {
		opts.MaxAdditionalPages = *r.MaxAdditionalPages
	}
	if r.DeepScan != nil {
		opts.DeepScan = *r.DeepScan
	}
	if r.SemanticScan != nil {
		opts.SemanticScan = *r.SemanticScan
	}
	if r.DeduplicationThreshold != nil {
		opts.DeduplicationThreshold = *r.DeduplicationThreshold
	}
	return opts
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "offerscan",
	})
}

// handleCreateScan runs a scan against the requested site and persists
// the result.
func (s *Server) handleCreateScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.runner.ScanURL(c.Request.Context(), req.SiteURL, req.BusinessName, req.options())
	if err != nil {
		s.logger.Error("scan failed", "url", req.SiteURL, "error", err)
		c.JSON(statusFromError(err), gin.H{"error": offerscan.ErrorMessage(err)})
		return
	}

	record := &offerscan.Scan{
		SiteURL:      req.SiteURL,
		BusinessName: req.BusinessName,
		Result:       *result,
	}
	if err := s.scans.CreateScan(c.Request.Context(), record); err != nil {
		s.logger.Error("scan persist failed", "url", req.SiteURL, "error", err)
		c.JSON(statusFromError(err), gin.H{"error": offerscan.ErrorMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) handleListScans(c *gin.Context) {
	var filter offerscan.ScanFilter
	if siteURL := c.Query("siteUrl"); siteURL != "" {
		filter.SiteURL = &siteURL
	}
	if err := bindPagination(c, &filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scans, err := s.scans.FindScans(c.Request.Context(), filter)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": offerscan.ErrorMessage(err)})
		return
	}
	if scans == nil {
		scans = []*offerscan.Scan{}
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans, "count": len(scans)})
}

func (s *Server) handleGetScan(c *gin.Context) {
	record, err := s.scans.FindScanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": offerscan.ErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) handleDeleteScan(c *gin.Context) {
	if err := s.scans.DeleteScan(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": offerscan.ErrorMessage(err)})
		return
	}

	c.Status(http.StatusNoContent)
}

// statusFromError maps domain error codes to HTTP status codes.
func statusFromError(err error) int {
	switch offerscan.ErrorCode(err) {
	case offerscan.EINVALID:
		return http.StatusBadRequest
	case offerscan.ENOTFOUND:
		return http.StatusNotFound
	case offerscan.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
