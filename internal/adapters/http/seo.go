package http

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h *Handler) baseURL() string {
	return strings.TrimRight(h.opts.BaseURL, "/")
}

func (h *Handler) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.baseURL())
}

// sitemap lists the home page, the plant guide and every plant page
func (h *Handler) sitemap(w http.ResponseWriter, r *http.Request) {
	base := h.baseURL()
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base, ChangeFreq: "daily", Priority: 1.0},
			{Loc: base + "/plants", ChangeFreq: "weekly", Priority: 0.9},
		},
	}
	for _, plant := range h.catalog.All() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/plants/" + plant.Slug,
			ChangeFreq: "monthly",
			Priority:   0.8,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		requestLogger(r).Error().Err(err).Msg("failed to encode sitemap")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	w.Write(out)
}
