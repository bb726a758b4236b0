package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "plants", "plant", "notfound"}

// pageRenderer holds one template set per page, each sharing the layout
type pageRenderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"sunlightLabel": domain.SunlightLabel,
	"paragraphs": func(s string) []string {
		return strings.Split(s, "\n\n")
	},
}

func newPageRenderer() (*pageRenderer, error) {
	r := &pageRenderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes into a buffer first so a template error becomes a clean 500
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		requestLogger(r).Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type homePage struct {
	Title        string
	Orientations []option
	WindowSizes  []option
	Distances    []option
	Obstructed   bool
	InvalidShare bool
	Result       *diagnosisResponse
	StreamURL    string
}

// home renders the questionnaire, and the diagnosis when the query
// carries a complete share link
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	profile := domain.DefaultRoomProfile()
	page := homePage{Title: "Find the right plant for your room"}

	if hasShareParams(q) {
		decoded, ok := domain.DecodeQuery(q)
		if ok {
			profile = decoded
			resp := h.diagnose(profile)
			page.Result = &resp
			page.StreamURL = "/api/diagnose/products?" + domain.EncodeQuery(profile).Encode()
			page.Title = "Your room: " + resp.Level.Label() + " sunlight"
		} else {
			page.InvalidShare = true
		}
	}

	page.Orientations = options(domain.Orientations, profile.Orientation)
	page.WindowSizes = options(domain.WindowSizes, profile.WindowSize)
	page.Distances = options(domain.Distances, profile.Distance)
	page.Obstructed = profile.HasObstruction

	h.render(w, r, http.StatusOK, "home", page)
}

func hasShareParams(q url.Values) bool {
	for _, key := range []string{domain.ParamOrientation, domain.ParamWindowSize, domain.ParamDistance, domain.ParamObstruction} {
		if _, ok := q[key]; ok {
			return true
		}
	}
	return false
}

func options[T interface {
	~string
	Label() string
}](values []T, selected T) []option {
	opts := make([]option, len(values))
	for i, v := range values {
		opts[i] = option{Value: string(v), Label: v.Label(), Selected: v == selected}
	}
	return opts
}

type careGroup struct {
	Label  string
	Plants []domain.Plant
}

type plantsPage struct {
	Title  string
	Groups []careGroup
}

func (h *Handler) plantList(w http.ResponseWriter, r *http.Request) {
	page := plantsPage{Title: "Houseplant guide"}
	for _, level := range domain.CareLevels {
		plants := h.catalog.ByCareLevel(level)
		if len(plants) == 0 {
			continue
		}
		page.Groups = append(page.Groups, careGroup{Label: level.Label(), Plants: plants})
	}

	h.render(w, r, http.StatusOK, "plants", page)
}

type plantPage struct {
	Title   string
	Plant   domain.Plant
	Related []domain.Plant
	Keyword string
}

func (h *Handler) plantDetail(w http.ResponseWriter, r *http.Request) {
	plant, err := h.catalog.BySlug(r.PathValue("slug"))
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			h.notFound(w, r)
			return
		}
		requestLogger(r).Error().Err(err).Msg("failed to look up plant")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, "plant", plantPage{
		Title:   plant.Name,
		Plant:   plant,
		Related: h.catalog.Related(plant, relatedPlants),
		Keyword: plant.Keyword(),
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "notfound", struct{ Title string }{"Page not found"})
}
