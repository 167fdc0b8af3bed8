// Package profile defines the startup-profile record collected by the wizard:
// its field keys, the four sections that own them and the canonical defaults.
package profile

import "fmt"

// Key identifies a field of the record. Values are the literal wire keys.
type Key string

const (
	StartupName            Key = "startup_name"
	ProblemStatement       Key = "problem_statement"
	SolutionDescription    Key = "solution_description"
	UniqueValueProposition Key = "unique_value_proposition"
	TargetCustomerSegment  Key = "target_customer_segment"

	EstimatedMarketSize Key = "estimated_market_size"
	GeographicFocus     Key = "geographic_focus"
	Competitors         Key = "competitors"
	MarketGrowthRate    Key = "market_growth_rate"

	RevenueModel            Key = "revenue_model"
	PricingStrategy         Key = "pricing_strategy"
	EstimatedMonthlyRevenue Key = "estimated_monthly_revenue"
	EstimatedBurnRate       Key = "estimated_burn_rate"
	FundingStage            Key = "funding_stage"
	RunwayDurationMonths    Key = "runway_duration_months"

	NumberOfFounders          Key = "number_of_founders"
	FoundersBackground        Key = "founders_background"
	YearsOfExperience         Key = "years_of_experience"
	TeamRatio                 Key = "team_ratio"
	PreviousStartupExperience Key = "previous_startup_experience"
)

// Kind describes how a field's raw input is interpreted.
type Kind int

const (
	KindText     Kind = iota // Single line text
	KindLongText             // Multi-line text, validated by length
	KindNumber               // Decimal number
	KindInteger              // Whole number
	KindBool                 // Yes/no
	KindTextList             // Ordered list of text (competitors)
)

// Field is the static description of one record field.
type Field struct {
	Key   Key
	Label string
	Kind  Kind
}

// fields is in wire order.
var fields = []Field{
	{StartupName, "Startup name", KindText},
	{ProblemStatement, "Problem statement", KindLongText},
	{SolutionDescription, "Solution description", KindLongText},
	{UniqueValueProposition, "Unique value proposition", KindText},
	{TargetCustomerSegment, "Target customer segment", KindText},
	{EstimatedMarketSize, "Estimated market size", KindNumber},
	{GeographicFocus, "Geographic focus", KindText},
	{Competitors, "Competitors", KindTextList},
	{MarketGrowthRate, "Market growth rate", KindNumber},
	{RevenueModel, "Revenue model", KindText},
	{PricingStrategy, "Pricing strategy", KindText},
	{EstimatedMonthlyRevenue, "Estimated monthly revenue", KindNumber},
	{EstimatedBurnRate, "Estimated burn rate", KindNumber},
	{FundingStage, "Funding stage", KindText},
	{RunwayDurationMonths, "Runway duration (months)", KindInteger},
	{NumberOfFounders, "Number of founders", KindInteger},
	{FoundersBackground, "Founders background", KindLongText},
	{YearsOfExperience, "Years of experience", KindInteger},
	{TeamRatio, "Technical vs business team ratio", KindText},
	{PreviousStartupExperience, "Previous startup experience", KindBool},
}

var fieldIndex = func() map[Key]Field {
	m := make(map[Key]Field, len(fields))
	for _, f := range fields {
		m[f.Key] = f
	}
	return m
}()

// Fields returns every field in wire order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Keys returns every field key in wire order.
func Keys() []Key {
	out := make([]Key, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

// Lookup returns the field description for key.
func Lookup(key Key) (Field, bool) {
	f, ok := fieldIndex[key]
	return f, ok
}

// ParseKey validates a wire key.
func ParseKey(s string) (Key, error) {
	if _, ok := fieldIndex[Key(s)]; !ok {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return Key(s), nil
}

// Label returns the human readable label of key, or the key itself if unknown.
func (k Key) Label() string {
	if f, ok := fieldIndex[k]; ok {
		return f.Label
	}
	return string(k)
}

// Kind returns the input kind of key.
func (k Key) Kind() Kind {
	return fieldIndex[k].Kind
}
