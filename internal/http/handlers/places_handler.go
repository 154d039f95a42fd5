// README: Address search handler proxying the Places API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cab/internal/maps"
)

type PlacesHandler struct {
	places *maps.PlacesService
}

func NewPlacesHandler(places *maps.PlacesService) *PlacesHandler {
	return &PlacesHandler{places: places}
}

func (h *PlacesHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}
	results, err := h.places.SearchAddresses(c.Request.Context(), query, 5)
	if err != nil {
		writeError(c, http.StatusBadGateway, "address search unavailable")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"results": results})
}
