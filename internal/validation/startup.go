package validation

import (
	"sync"

	p "github.com/investorlens/investorlens/internal/profile"
)

// MinLongTextLength is the minimum length of the problem statement and the
// solution description.
const MinLongTextLength = 150

// BurnRateMessage is attached to the burn rate when it exceeds revenue.
const BurnRateMessage = "Burn rate is higher than monthly revenue. This indicates higher financial risk (confirm values)."

// StartupRules returns the field rules of the startup profile.
func StartupRules() []FieldRule {
	return []FieldRule{
		Required(p.StartupName, "Startup name is required"),
		MinLength(p.ProblemStatement, MinLongTextLength, "Problem statement must be at least 150 characters"),
		MinLength(p.SolutionDescription, MinLongTextLength, "Solution description must be at least 150 characters"),
		Required(p.UniqueValueProposition, "Unique value proposition is required"),
		Required(p.TargetCustomerSegment, "Target customer segment is required"),

		Positive(p.EstimatedMarketSize, "Estimated market size must be greater than 0"),
		Required(p.GeographicFocus, "Geographic focus is required"),
		TextList(p.Competitors, "Competitor names cannot be empty"),
		NonNegative(p.MarketGrowthRate, "Market growth rate cannot be negative"),

		Required(p.RevenueModel, "Revenue model is required"),
		Required(p.PricingStrategy, "Pricing strategy is required"),
		NonNegative(p.EstimatedMonthlyRevenue, "Estimated monthly revenue cannot be negative"),
		NonNegative(p.EstimatedBurnRate, "Estimated burn rate cannot be negative"),
		Required(p.FundingStage, "Funding stage is required"),
		WholeNumber(p.RunwayDurationMonths, 0,
			"Runway must be a whole number (months)",
			"Runway duration cannot be negative"),

		WholeNumber(p.NumberOfFounders, 1,
			"Number of founders must be a whole number",
			"There must be at least 1 founder"),
		Required(p.FoundersBackground, "Founders background is required"),
		WholeNumber(p.YearsOfExperience, 0,
			"Years of experience must be a whole number",
			"Years of experience cannot be negative"),
		Required(p.TeamRatio, "Team ratio is required"),
		Boolean(p.PreviousStartupExperience),
	}
}

// StartupCrossRules returns the cross-field rules of the startup profile.
func StartupCrossRules() []CrossRule {
	return []CrossRule{
		NotGreaterThan(p.EstimatedBurnRate, p.EstimatedMonthlyRevenue, BurnRateMessage),
	}
}

var (
	defaultSchema *Schema
	defaultOnce   sync.Once
)

// Default returns the startup profile schema.
func Default() *Schema {
	defaultOnce.Do(func() {
		s, err := NewSchema(StartupRules(), StartupCrossRules()...)
		if err != nil {
			panic("validation: invalid startup schema: " + err.Error())
		}
		defaultSchema = s
	})
	return defaultSchema
}
