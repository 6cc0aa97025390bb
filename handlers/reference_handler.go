package handlers

import (
	"errors"
	"net/http"

	"awardcheck-backend/repository"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves read-only lookups over the record store
type ReferenceHandler struct {
	store repository.RecordStore
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(store repository.RecordStore) *ReferenceHandler {
	return &ReferenceHandler{store: store}
}

// ListSites handles GET /api/sites
func (h *ReferenceHandler) ListSites(c *gin.Context) {
	respondData(c, http.StatusOK, h.store.ListSites())
}

// GetSite handles GET /api/sites/:id
func (h *ReferenceHandler) GetSite(c *gin.Context) {
	site, err := h.store.GetSite(c.Param("id"))
	if err != nil {
		respondLookupError(c, err, "Site not found")
		return
	}
	respondData(c, http.StatusOK, site)
}

// GetProjectRef handles GET /api/project-refs/:id
func (h *ReferenceHandler) GetProjectRef(c *gin.Context) {
	ref, err := h.store.GetProjectRef(c.Param("id"))
	if err != nil {
		respondLookupError(c, err, "Project reference not found")
		return
	}
	respondData(c, http.StatusOK, ref)
}

// ListLineItems handles GET /api/line-items
func (h *ReferenceHandler) ListLineItems(c *gin.Context) {
	respondData(c, http.StatusOK, h.store.ListLineItemDefinitions())
}

// GetLineItem handles GET /api/line-items/:id
func (h *ReferenceHandler) GetLineItem(c *gin.Context) {
	def, err := h.store.GetLineItemDefinition(c.Param("id"))
	if err != nil {
		respondLookupError(c, err, "Line item not found")
		return
	}
	respondData(c, http.StatusOK, def)
}

// GetContract handles GET /api/contracts/:id
func (h *ReferenceHandler) GetContract(c *gin.Context) {
	contract, err := h.store.GetContract(c.Param("id"))
	if err != nil {
		respondLookupError(c, err, "Contract not found")
		return
	}
	respondData(c, http.StatusOK, contract)
}

func respondLookupError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", notFoundMessage)
		return
	}
	respondError(c, http.StatusInternalServerError, "LOOKUP_FAILED", err.Error())
}
