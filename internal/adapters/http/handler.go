package http

import (
	"net/http"
	"time"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
)

// relatedPlants is how many related plants a detail page shows
const relatedPlants = 3

// PlantCatalog is the catalog view the web pages need
type PlantCatalog interface {
	domain.PlantCatalog
	ByCareLevel(level domain.CareLevel) []domain.Plant
	Related(plant domain.Plant, n int) []domain.Plant
}

// Options configures the web handler
type Options struct {
	// BaseURL is the public origin used for share links and the sitemap
	BaseURL string
	// LookupDelay paces product searches in the streaming endpoint
	LookupDelay time.Duration
}

// Handler serves the diagnosis web pages and JSON API
type Handler struct {
	catalog  PlantCatalog
	searcher ports.ProductSearcher
	opts     Options
	pages    *pageRenderer
}

// NewHandler creates a new web handler
func NewHandler(catalog PlantCatalog, searcher ports.ProductSearcher, opts Options) (*Handler, error) {
	pages, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		catalog:  catalog,
		searcher: searcher,
		opts:     opts,
		pages:    pages,
	}, nil
}

// Routes returns the full route table wrapped in request logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /plants", h.plantList)
	mux.HandleFunc("GET /plants/{slug}", h.plantDetail)

	mux.HandleFunc("GET /api/diagnose", h.apiDiagnose)
	mux.HandleFunc("GET /api/products", h.apiProducts)
	mux.HandleFunc("GET /api/diagnose/products", h.apiDiagnoseProducts)

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /robots.txt", h.robots)
	mux.HandleFunc("GET /sitemap.xml", h.sitemap)

	mux.HandleFunc("/", h.notFound)

	return withRequestLogging(mux)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
