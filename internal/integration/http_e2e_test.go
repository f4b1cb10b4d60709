//go:build integration || !unit

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cityguide/internal/adapters/deezer"
	"cityguide/internal/adapters/geodb"
	server "cityguide/internal/adapters/http_server"
	"cityguide/internal/adapters/openweather"
	"cityguide/internal/adapters/unsplash"
	"cityguide/internal/app"
	"cityguide/internal/domain"
)

// ---------- fake providers ----------

func photos(n int, tag string) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(
			`{"urls":{"regular":"https://img/%s/%d","small":"https://img/%s/%d/s"},"color":"#112233","alt_description":null}`,
			tag, i, tag, i))
	}
	return `{"results":[` + strings.Join(items, ",") + `]}`
}

// providers serves all four upstream APIs from one mux. Scenery search always fails.
func providers(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Paris,FR" {
			http.Error(w, `{"cod":"404"}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"main":{"temp":15.4,"feels_like":14.6,"humidity":60},` +
			`"weather":[{"description":"clear sky","icon":"01d"}],"wind":{"speed":3.1}}`))
	})
	mux.HandleFunc("/search/photos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		if q == "Paris images" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// hand back more than asked for; the adapter must cap
		_, _ = w.Write([]byte(photos(10, strings.ReplaceAll(q, " ", "-"))))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"title":"T1","artist":{"name":"A1"},"preview":"https://p/1","album":{"cover_medium":"https://c/1"}},
			{"title":"T2","artist":{"name":"A2"},"preview":"","album":{"cover_medium":"https://c/2"}},
			{"title":"T3","artist":{"name":"A3"},"preview":"https://p/3","album":{"cover_medium":"https://c/3"}},
			{"title":"T4","artist":{"name":"A4"},"preview":"","album":{"cover_medium":"https://c/4"}},
			{"title":"T5","artist":{"name":"A5"},"preview":"https://p/5","album":{"cover_medium":"https://c/5"}}
		]}`))
	})
	mux.HandleFunc("/v1/geo/cities", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"name":"Paris","country":"France","countryCode":"FR","region":"Île-de-France"}]}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func stack(t *testing.T) *httptest.Server {
	t.Helper()
	up := providers(t)
	svc := app.NewPlaceService(
		openweather.New(up.URL, "w"),
		unsplash.New(up.URL, "u"),
		deezer.New(up.URL),
		geodb.New(up.URL, "g"),
		2*time.Second,
	)
	srv := server.New([]string{"http://localhost:4321"}, 5*time.Second)
	srv.MountHandlers(&server.Handlers{P: svc})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

// ---------- the tests ----------

func TestHTTP_EndToEnd_Place_Paris(t *testing.T) {
	ts := stack(t)

	res, err := http.Get(ts.URL + "/place?name=Paris&country=France&countryCode=FR")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body domain.CompositeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	wantWeather := domain.WeatherRecord{
		Temperature: 15, FeelsLike: 15, HumidityPercent: 60,
		Description: "Clear Sky", IconCode: "01d", WindSpeed: 3.1,
	}
	if body.Weather == nil || *body.Weather != wantWeather {
		t.Fatalf("weather: %+v", body.Weather)
	}
	if body.Scenery == nil || len(body.Scenery) != 0 {
		t.Fatalf("scenery should fall back to [], got %+v", body.Scenery)
	}
	for name, got := range map[string][]domain.PhotoRecord{
		"architecture": body.Architecture,
		"foodPhotos":   body.FoodPhotos,
		"dress":        body.Dress,
	} {
		if len(got) != 4 {
			t.Fatalf("%s: expected 4 photos, got %d", name, len(got))
		}
	}
	if body.FoodPhotos[0].AltText != "Paris food" {
		t.Fatalf("alt text should fall back to the query, got %q", body.FoodPhotos[0].AltText)
	}
	if len(body.Music) != 3 || body.Music[0].Title != "T1" || body.Music[1].Title != "T3" || body.Music[2].Title != "T5" {
		t.Fatalf("music: %+v", body.Music)
	}
}

func TestHTTP_EndToEnd_Place_IdenticalBodies(t *testing.T) {
	ts := stack(t)

	read := func() []byte {
		res, err := http.Get(ts.URL + "/place?name=Paris&countryCode=FR")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer res.Body.Close()
		b, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return b
	}
	if a, b := read(), read(); !bytes.Equal(a, b) {
		t.Fatalf("bodies differ:\n%s\n%s", a, b)
	}
}

func TestHTTP_EndToEnd_Autocomplete(t *testing.T) {
	ts := stack(t)

	res, err := http.Get(ts.URL + "/autocomplete?q=Par")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var body struct {
		Suggestions []domain.CitySuggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := domain.CitySuggestion{Name: "Paris", State: "Île-de-France", Country: "France", CountryCode: "FR"}
	if len(body.Suggestions) != 1 || body.Suggestions[0] != want {
		t.Fatalf("suggestions: %+v", body.Suggestions)
	}
}
