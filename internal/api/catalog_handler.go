package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/content"
)

// CatalogHandler serves the static resort catalogs with filtering.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListParks handles GET /parks.
func (h *CatalogHandler) ListParks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, content.Parks())
}

// ListAttractions handles GET /attractions with filter query parameters:
// park_id, category, max_thrill, max_height_cm, lightning_lane, headliners,
// tags (comma separated).
func (h *CatalogHandler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := content.AttractionFilter{
		ParkID:            q.Get("park_id"),
		Category:          content.Category(q.Get("category")),
		MaxThrill:         queryInt(q.Get("max_thrill")),
		MaxHeightMinCM:    queryInt(q.Get("max_height_cm")),
		LightningLaneOnly: q.Get("lightning_lane") == "true",
		HeadlinersOnly:    q.Get("headliners") == "true",
		Tags:              queryList(q.Get("tags")),
	}

	shared.RespondWithJSON(w, r, http.StatusOK, content.FilterAttractions(filter))
}

// ListRestaurants handles GET /restaurants with filter query parameters:
// park_id, cuisine, service, max_price_tier, dietary (comma separated),
// tags (comma separated).
func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := content.RestaurantFilter{
		ParkID:       q.Get("park_id"),
		Cuisine:      q.Get("cuisine"),
		Service:      content.ServiceType(q.Get("service")),
		MaxPriceTier: queryInt(q.Get("max_price_tier")),
		DietaryTags:  queryList(q.Get("dietary")),
		Tags:         queryList(q.Get("tags")),
	}

	shared.RespondWithJSON(w, r, http.StatusOK, content.FilterRestaurants(filter))
}

// queryInt parses an integer query value; malformed or missing values mean
// "unrestricted".
func queryInt(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// queryList splits a comma-separated query value, dropping empty entries.
func queryList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
