package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newecon/cleanbrief/internal/pipeline"
	"github.com/newecon/cleanbrief/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// remoteFixture fakes the hosted store's REST endpoint.
func remoteFixture(t *testing.T, articlesJSON, briefingsJSON string, fail bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/articles"):
			w.Write([]byte(articlesJSON))
		case strings.HasSuffix(r.URL.Path, "/daily_briefings"):
			w.Write([]byte(briefingsJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func testServer(t *testing.T, remote *httptest.Server) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(pipeline.New(store.New(remote.URL, "test-key")), log)
}

const fixtureArticles = `[
	{"source":"CBC","title":"Wind farm approved","url":"https://a.com","published_date":"2024-06-02T08:00:00Z"},
	{"source":"Globe","title":"Solar rebates","url":"https://b.com","published_date":"2024-06-01T08:00:00Z"}
]`

const fixtureBriefing = `[{"briefing_date":"2024-06-02","title":"Morning Brief","summary_text":"Busy day.","key_developments":["Wind up"]}]`

func TestIndexPage(t *testing.T) {
	remote := remoteFixture(t, fixtureArticles, fixtureBriefing, false)
	defer remote.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?date=2024-06-02", nil)
	testServer(t, remote).router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Wind farm approved") {
		t.Error("page should list the fetched articles")
	}
	if !strings.Contains(body, "Morning Brief") {
		t.Error("page should render the briefing for the date")
	}
}

func TestIndexPageRegionsFailIndependently(t *testing.T) {
	remote := remoteFixture(t, "", "", true)
	defer remote.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	testServer(t, remote).router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when fetches fail", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to load articles") {
		t.Error("page should show the articles failure message")
	}
}

func TestAPIArticlesSorted(t *testing.T) {
	remote := remoteFixture(t, fixtureArticles, "[]", false)
	defer remote.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles?sort=published_date_asc", nil)
	testServer(t, remote).router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Sort     string `json:"sort"`
		Articles []struct {
			Title string
		} `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Sort != "published_date_asc" {
		t.Errorf("sort = %q", resp.Sort)
	}
	if len(resp.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Title != "Solar rebates" {
		t.Errorf("oldest-first order expected, got %q first", resp.Articles[0].Title)
	}
}

func TestAPIArticlesRemoteFailure(t *testing.T) {
	remote := remoteFixture(t, "", "", true)
	defer remote.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	testServer(t, remote).router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestAPIBriefingNotFound(t *testing.T) {
	remote := remoteFixture(t, "[]", "[]", false)
	defer remote.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/briefing?date=2024-06-03", nil)
	testServer(t, remote).router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("missing briefing should be 404, got %d", w.Code)
	}
}

func TestAPIBriefingFound(t *testing.T) {
	remote := remoteFixture(t, "[]", fixtureBriefing, false)
	defer remote.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/briefing?date=2024-06-02", nil)
	testServer(t, remote).router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Morning Brief") {
		t.Error("response should carry the briefing title")
	}
}
