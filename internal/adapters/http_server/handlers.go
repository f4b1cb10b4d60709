package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"cityguide/internal/app"
	"cityguide/internal/domain"
)

type Handlers struct{ P *app.PlaceService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type placeParams struct {
	Name        string `query:"name" validate:"required,max=100"`
	Country     string `query:"country" validate:"max=100"`
	CountryCode string `query:"countryCode" validate:"omitempty,alpha,min=2,max=3"`
}

type autocompleteParams struct {
	Q string `query:"q" validate:"required,max=100"`
}

type suggestionsBody struct {
	Suggestions []domain.CitySuggestion `json:"suggestions"`
}

var validate = newValidator()

// newValidator reports fields by their query parameter name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if n := f.Tag.Get("query"); n != "" {
			return n
		}
		return f.Name
	})
	return v
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/autocomplete", h.autocomplete)
	s.mux.Get("/place", h.getPlace)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// validationDetail turns validator errors into "name: required; countryCode: alpha".
func validationDetail(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := placeParams{
		Name:        strings.TrimSpace(q.Get("name")),
		Country:     strings.TrimSpace(q.Get("country")),
		CountryCode: strings.ToUpper(strings.TrimSpace(q.Get("countryCode"))),
	}
	if err := validate.Struct(p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid parameters", validationDetail(err))
		return
	}

	resp := h.P.GetPlace(r.Context(), domain.PlaceQuery{Name: p.Name, Country: p.Country, CountryCode: p.CountryCode})
	writeJSON(w, r, resp)
}

func (h *Handlers) autocomplete(w http.ResponseWriter, r *http.Request) {
	p := autocompleteParams{Q: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := validate.Struct(p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid parameters", validationDetail(err))
		return
	}

	out, err := h.P.Autocomplete(r.Context(), p.Q)
	if err != nil {
		log.Error().Err(err).Str("q", p.Q).Msg("autocomplete failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "city suggestions unavailable")
		return
	}
	writeJSON(w, r, suggestionsBody{Suggestions: out})
}
