package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"financecontroll/internal/repositories"
	"financecontroll/internal/testutil"
	"financecontroll/internal/validator"
)

func newPortfolioRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validator.Register()

	adapter := testutil.SetupTestAdapter(t)
	t.Cleanup(func() { testutil.TeardownTestAdapter(t, adapter) })

	handler := NewPortfolioHandler(repositories.NewPortfolioRepository(adapter))

	router := gin.New()
	router.GET("/portfolios", handler.List)
	router.POST("/portfolios", handler.Create)
	router.GET("/portfolios/:id", handler.Get)
	router.POST("/portfolios/:id/archive", handler.Archive)
	return router
}

func TestPortfolioHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := newPortfolioRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/portfolios",
			strings.NewReader(`{"name":"Pensjon","base_currency":"NOK"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var body struct {
			Portfolio struct {
				ID           string `json:"id"`
				Name         string `json:"name"`
				BaseCurrency string `json:"base_currency"`
			} `json:"portfolio"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Portfolio.ID == "" || body.Portfolio.Name != "Pensjon" {
			t.Errorf("unexpected portfolio in response: %+v", body.Portfolio)
		}
	})

	t.Run("missing_name_rejected", func(t *testing.T) {
		router := newPortfolioRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/portfolios", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad_currency_rejected", func(t *testing.T) {
		router := newPortfolioRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/portfolios",
			strings.NewReader(`{"name":"X","base_currency":"NOTREAL"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestPortfolioHandlerGet(t *testing.T) {
	t.Run("invalid_id", func(t *testing.T) {
		router := newPortfolioRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/portfolios/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for malformed id, got %d", w.Code)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		router := newPortfolioRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/portfolios/0198e9c1-0000-7000-8000-000000000000", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Error.Code != "PORTFOLIO_NOT_FOUND" {
			t.Errorf("expected PORTFOLIO_NOT_FOUND, got %s", body.Error.Code)
		}
	})
}

func TestPortfolioHandlerArchiveFlow(t *testing.T) {
	router := newPortfolioRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portfolios", strings.NewReader(`{"name":"Gamle fond"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	var created struct {
		Portfolio struct {
			ID string `json:"id"`
		} `json:"portfolio"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/portfolios/"+created.Portfolio.ID+"/archive", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("archive failed: %d: %s", w.Code, w.Body.String())
	}

	// Archived portfolios drop out of the default listing.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/portfolios", nil)
	router.ServeHTTP(w, req)

	var listed struct {
		Portfolios []json.RawMessage `json:"portfolios"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(listed.Portfolios) != 0 {
		t.Errorf("expected empty default listing, got %d portfolios", len(listed.Portfolios))
	}
}
