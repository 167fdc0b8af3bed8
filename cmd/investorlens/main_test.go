package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/investorlens/investorlens/internal/config"
	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/validation"
	"github.com/stretchr/testify/require"
)

var longText = strings.Repeat("a detailed sentence about the startup. ", 5)

func validProfile() string {
	return `startup_name: Acme Robotics
problem_statement: "` + longText + `"
solution_description: "` + longText + `"
unique_value_proposition: Faster warehouses
target_customer_segment: Mid-size logistics firms
estimated_market_size: 1200000000
geographic_focus: EU
competitors: [Locus, "6 River"]
market_growth_rate: 12.5
revenue_model: SaaS
pricing_strategy: Per robot per month
estimated_monthly_revenue: 40000
estimated_burn_rate: 30000
funding_stage: Seed
runway_duration_months: 18
number_of_founders: 2
founders_background: Robotics PhDs
years_of_experience: 9
team_ratio: 3:1 engineering
previous_startup_experience: yes
`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadProfile(t *testing.T) {
	in, err := readProfile(writeFile(t, validProfile()))
	require.NoError(t, err)
	require.Empty(t, validation.Default().Validate(in))
	require.Equal(t, []string{"Locus", "6 River"}, in.List("competitors"))
}

func TestReadProfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty file", content: "", want: "empty"},
		{name: "unknown key", content: "startup_name: A\nvaluation: 10\n", want: "valuation"},
		{name: "bad competitors", content: "competitors: nope\n", want: "competitors"},
		{name: "not yaml", content: "startup_name: [\n", want: "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readProfile(writeFile(t, tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := readProfile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestWalkToLastStep(t *testing.T) {
	in, err := readProfile(writeFile(t, validProfile()))
	require.NoError(t, err)
	f := form.NewWith(validation.Default(), in)
	require.NoError(t, walkToLastStep(f))
	require.True(t, f.IsLast())
}

func TestWalkToLastStep_StopsAtInvalidStep(t *testing.T) {
	content := strings.Replace(validProfile(), "geographic_focus: EU", `geographic_focus: ""`, 1)
	in, err := readProfile(writeFile(t, content))
	require.NoError(t, err)

	f := form.NewWith(validation.Default(), in)
	err = walkToLastStep(f)
	require.Error(t, err)
	require.Equal(t, 1, f.Step())
	require.NotEmpty(t, f.Error("geographic_focus"))
}

func TestSubmitAgainstService(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score":8}`))
	}))
	defer srv.Close()

	cfg := config.Defaults()
	cfg.BaseURL = srv.URL
	cfg.MetricsFile = filepath.Join(t.TempDir(), "investorlens.prom")
	client, metrics, err := newClient(cfg)
	require.NoError(t, err)
	require.NotNil(t, metrics)

	in, err := readProfile(writeFile(t, validProfile()))
	require.NoError(t, err)
	f := form.NewWith(validation.Default(), in)
	require.NoError(t, walkToLastStep(f))

	res, err := f.Submit(context.Background(), client)
	require.NoError(t, err)
	require.JSONEq(t, `{"score":8}`, string(res.Payload))
	require.Equal(t, true, got["previous_startup_experience"])
	require.Equal(t, float64(18), got["runway_duration_months"])

	flushMetrics(cfg, metrics)
	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "investorlens_analysis_requests_total")

	dir := t.TempDir()
	require.NoError(t, saveReport(dir, "Acme Robotics", res))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestNewClient_NoMetricsByDefault(t *testing.T) {
	_, metrics, err := newClient(config.Defaults())
	require.NoError(t, err)
	require.Nil(t, metrics)
}

func TestColorEnabled_Disabled(t *testing.T) {
	require.False(t, colorEnabled(true))
}
