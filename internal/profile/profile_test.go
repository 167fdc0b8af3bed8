package profile

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleValues() Values {
	return Values{
		StartupName:               "InvestorLens AI",
		ProblemStatement:          "Angel investors lack structured data.",
		SolutionDescription:       "A guided profile and risk model.",
		UniqueValueProposition:    "Explainable risk scores",
		TargetCustomerSegment:     "Angel investors",
		EstimatedMarketSize:       5000000,
		GeographicFocus:           "Global",
		Competitors:               []string{"Acme", "Globex", "Acme"},
		MarketGrowthRate:          12.5,
		RevenueModel:              "Subscription",
		PricingStrategy:           "Tiered",
		EstimatedMonthlyRevenue:   4000,
		EstimatedBurnRate:         3500,
		FundingStage:              "Seed",
		RunwayDurationMonths:      18,
		NumberOfFounders:          2,
		FoundersBackground:        "Ex-fintech engineers",
		YearsOfExperience:         9,
		TeamRatio:                 "60% Tech / 40% Business",
		PreviousStartupExperience: true,
	}
}

func TestValues_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	for name, v := range map[string]Values{
		"defaults": Defaults(),
		"sample":   sampleValues(),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(v)
			require.NoError(t, err)

			var got Values
			require.NoError(t, json.Unmarshal(data, &got))
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValues_WireKeys(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Defaults())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc, len(Keys()))
	for _, k := range Keys() {
		require.Contains(t, doc, string(k))
	}
	require.Equal(t, []any{}, doc["competitors"], "competitors must serialize as an empty array")
	require.Equal(t, float64(1), doc["number_of_founders"])
}

func TestDefaults_FullyPopulated(t *testing.T) {
	t.Parallel()

	in := NewInput()
	for _, k := range Keys() {
		require.NotNil(t, in.Get(k), "key %s has no default", k)
	}
	require.Equal(t, "", in.Text(StartupName))
	require.Equal(t, "0", in.Text(EstimatedMarketSize))
	require.Equal(t, "1", in.Text(NumberOfFounders))
	require.Equal(t, "false", in.Text(PreviousStartupExperience))
	require.Empty(t, in.List(Competitors))
}

func TestSections_OwnEveryKeyOnce(t *testing.T) {
	t.Parallel()

	seen := map[Key]int{}
	for i, s := range Sections() {
		require.Equal(t, i, s.Index)
		for _, k := range s.Keys {
			seen[k]++
		}
	}
	require.Len(t, seen, len(Keys()))
	for k, n := range seen {
		require.Equal(t, 1, n, "key %s owned by %d sections", k, n)
	}

	s, ok := SectionOf(EstimatedBurnRate)
	require.True(t, ok)
	require.Equal(t, "Financial", s.Name)
	require.True(t, s.Owns(EstimatedMonthlyRevenue))
}

func TestSections_ReturnCopies(t *testing.T) {
	t.Parallel()

	s := SectionAt(SectionBusiness)
	s.Keys[0] = "mutated"
	require.Equal(t, StartupName, SectionAt(SectionBusiness).Keys[0])
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(`
startup_name: Acme
estimated_market_size: "2500"
competitors: [Globex, Initech]
previous_startup_experience: yes
`), &doc))

	in, err := FromMap(doc)
	require.NoError(t, err)
	require.Equal(t, "Acme", in.Text(StartupName))
	require.Equal(t, "2500", in.Text(EstimatedMarketSize))
	require.Equal(t, []string{"Globex", "Initech"}, in.List(Competitors))
	require.Equal(t, "1", in.Text(NumberOfFounders), "missing keys keep defaults")

	_, err = FromMap(map[string]any{"valuation": 10})
	require.Error(t, err)

	_, err = FromMap(map[string]any{"competitors": []any{"a", 3}})
	require.Error(t, err)
}

func TestInput_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	in := FromValues(sampleValues())
	cp := in.Clone()
	require.NoError(t, cp.Set(Competitors, []string{"Other"}))
	require.NoError(t, cp.Set(StartupName, "Changed"))

	require.Equal(t, []string{"Acme", "Globex", "Acme"}, in.List(Competitors))
	require.Equal(t, "InvestorLens AI", in.Text(StartupName))

	list := in.List(Competitors)
	list[0] = "mutated"
	require.Equal(t, "Acme", in.List(Competitors)[0])
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	k, err := ParseKey("team_ratio")
	require.NoError(t, err)
	require.Equal(t, TeamRatio, k)
	require.Equal(t, "Technical vs business team ratio", k.Label())

	_, err = ParseKey("nope")
	require.Error(t, err)
}
