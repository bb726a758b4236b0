package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
)

// diagnosisResponse is a diagnosis plus the link that reproduces it
type diagnosisResponse struct {
	domain.Diagnosis
	ShareURL string `json:"shareUrl"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
	Error    string           `json:"error,omitempty"`
}

// productsEvent is one server-sent event of the streaming lookup
type productsEvent struct {
	Slug     string           `json:"slug"`
	Name     string           `json:"name"`
	Keyword  string           `json:"keyword"`
	Products []domain.Product `json:"products"`
	Failed   bool             `json:"failed,omitempty"`
}

func (h *Handler) diagnose(p domain.RoomProfile) diagnosisResponse {
	return diagnosisResponse{
		Diagnosis: domain.Diagnose(p, h.catalog.All()),
		ShareURL:  domain.ShareURL(h.opts.BaseURL, p),
	}
}

// apiDiagnose handles GET /api/diagnose?dir=&win=&dist=&obs=
func (h *Handler) apiDiagnose(w http.ResponseWriter, r *http.Request) {
	profile, ok := domain.DecodeQuery(r.URL.Query())
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidProfile.Error())
		return
	}

	resp := h.diagnose(profile)
	requestLogger(r).Info().
		Int("score", resp.Score).
		Str("level", string(resp.Level)).
		Int("plants", len(resp.Plants)).
		Msg("diagnosis computed")

	writeJSON(w, http.StatusOK, resp)
}

// apiProducts handles GET /api/products?keyword=
func (h *Handler) apiProducts(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		writeJSON(w, http.StatusBadRequest, productsResponse{
			Products: []domain.Product{},
			Error:    domain.ErrEmptyKeyword.Error(),
		})
		return
	}

	products, err := h.searcher.Search(r.Context(), keyword)
	if err != nil {
		requestLogger(r).Error().Err(err).Str("keyword", keyword).Msg("product search failed")
		writeJSON(w, http.StatusBadGateway, productsResponse{
			Products: []domain.Product{},
			Error:    "failed to fetch products",
		})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	writeJSON(w, http.StatusOK, productsResponse{Products: products})
}

// apiDiagnoseProducts streams products for every recommended plant as
// server-sent events, in recommendation order, ending with a done event.
// A client disconnect cancels the remaining lookups.
func (h *Handler) apiDiagnoseProducts(w http.ResponseWriter, r *http.Request) {
	profile, ok := domain.DecodeQuery(r.URL.Query())
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidProfile.Error())
		return
	}

	plants := domain.Diagnose(profile, h.catalog.All()).Plants
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	lookup := ports.NewProductLookup(h.searcher, h.opts.LookupDelay)
	err := lookup.Run(r.Context(), plants, func(result domain.PlantProducts) {
		event := productsEvent{
			Slug:     result.Plant.Slug,
			Name:     result.Plant.Name,
			Keyword:  result.Keyword,
			Products: result.Products,
			Failed:   result.Err != nil,
		}
		if err := writeEvent(w, "products", event); err != nil {
			requestLogger(r).Warn().Err(err).Msg("failed to write event")
			return
		}
		rc.Flush()
	})
	if err != nil {
		requestLogger(r).Debug().Err(err).Msg("product stream ended early")
		return
	}

	writeEvent(w, "done", struct{}{})
	rc.Flush()
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPlantNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidProfile), errors.Is(err, domain.ErrEmptyKeyword):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSearchUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
