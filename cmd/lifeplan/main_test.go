package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifeplan/internal/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_URL", apiURL)
	t.Setenv("API_KEY", "cli-key")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecommendCommand(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		_, _ = w.Write([]byte(`{"data":[{"plan":"Term Life 20","coverage":"$500,000","termLength":"20 years","explanation":"Fits a young family."}]}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "recommend", "--age", "30", "--income", "50000", "--dependents", "1", "--risk", "Low")
	require.NoError(t, err)

	assert.Equal(t, "cli-key", gotKey)
	assert.Contains(t, out, "income $50,000")
	assert.Contains(t, out, "Recommended Plan: Term Life 20")
	assert.Contains(t, out, "Term: 20 years")
}

func TestRecommendCommandUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := runCLI(t, srv.URL, "recommend", "--age", "30", "--income", "1", "--dependents", "0", "--risk", "High")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Something went wrong")

	var statusErr *recommendation.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestPrintRecommendationsEmpty(t *testing.T) {
	var out bytes.Buffer
	printRecommendations(&out, nil)
	assert.Equal(t, "No plans matched.\n", out.String())
}

func TestHistoryRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := runCLI(t, "http://127.0.0.1:1", "history")
	assert.EqualError(t, err, "DATABASE_URL is not set")
}
