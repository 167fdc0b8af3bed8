package profile

import "fmt"

// Values is the typed startup-profile record as sent to the analysis service.
// Struct tags are the literal wire keys.
type Values struct {
	StartupName            string `json:"startup_name" yaml:"startup_name"`
	ProblemStatement       string `json:"problem_statement" yaml:"problem_statement"`
	SolutionDescription    string `json:"solution_description" yaml:"solution_description"`
	UniqueValueProposition string `json:"unique_value_proposition" yaml:"unique_value_proposition"`
	TargetCustomerSegment  string `json:"target_customer_segment" yaml:"target_customer_segment"`

	EstimatedMarketSize float64  `json:"estimated_market_size" yaml:"estimated_market_size"`
	GeographicFocus     string   `json:"geographic_focus" yaml:"geographic_focus"`
	Competitors         []string `json:"competitors" yaml:"competitors"`
	MarketGrowthRate    float64  `json:"market_growth_rate" yaml:"market_growth_rate"`

	RevenueModel            string  `json:"revenue_model" yaml:"revenue_model"`
	PricingStrategy         string  `json:"pricing_strategy" yaml:"pricing_strategy"`
	EstimatedMonthlyRevenue float64 `json:"estimated_monthly_revenue" yaml:"estimated_monthly_revenue"`
	EstimatedBurnRate       float64 `json:"estimated_burn_rate" yaml:"estimated_burn_rate"`
	FundingStage            string  `json:"funding_stage" yaml:"funding_stage"`
	RunwayDurationMonths    int     `json:"runway_duration_months" yaml:"runway_duration_months"`

	NumberOfFounders          int    `json:"number_of_founders" yaml:"number_of_founders"`
	FoundersBackground        string `json:"founders_background" yaml:"founders_background"`
	YearsOfExperience         int    `json:"years_of_experience" yaml:"years_of_experience"`
	TeamRatio                 string `json:"team_ratio" yaml:"team_ratio"`
	PreviousStartupExperience bool   `json:"previous_startup_experience" yaml:"previous_startup_experience"`
}

// Defaults returns the canonical default record. It is the only place
// default values are defined.
func Defaults() Values {
	return Values{
		Competitors:      []string{},
		NumberOfFounders: 1,
	}
}

// Get returns the value of key as an untyped value.
func (v Values) Get(key Key) any {
	switch key {
	case StartupName:
		return v.StartupName
	case ProblemStatement:
		return v.ProblemStatement
	case SolutionDescription:
		return v.SolutionDescription
	case UniqueValueProposition:
		return v.UniqueValueProposition
	case TargetCustomerSegment:
		return v.TargetCustomerSegment
	case EstimatedMarketSize:
		return v.EstimatedMarketSize
	case GeographicFocus:
		return v.GeographicFocus
	case Competitors:
		out := make([]string, len(v.Competitors))
		copy(out, v.Competitors)
		return out
	case MarketGrowthRate:
		return v.MarketGrowthRate
	case RevenueModel:
		return v.RevenueModel
	case PricingStrategy:
		return v.PricingStrategy
	case EstimatedMonthlyRevenue:
		return v.EstimatedMonthlyRevenue
	case EstimatedBurnRate:
		return v.EstimatedBurnRate
	case FundingStage:
		return v.FundingStage
	case RunwayDurationMonths:
		return v.RunwayDurationMonths
	case NumberOfFounders:
		return v.NumberOfFounders
	case FoundersBackground:
		return v.FoundersBackground
	case YearsOfExperience:
		return v.YearsOfExperience
	case TeamRatio:
		return v.TeamRatio
	case PreviousStartupExperience:
		return v.PreviousStartupExperience
	}
	return nil
}

// Assign stores an already decoded value for key. The dynamic type of val
// must match the field: string, float64, int, bool or []string.
func (v *Values) Assign(key Key, val any) error {
	var ok bool
	switch key {
	case StartupName:
		v.StartupName, ok = val.(string)
	case ProblemStatement:
		v.ProblemStatement, ok = val.(string)
	case SolutionDescription:
		v.SolutionDescription, ok = val.(string)
	case UniqueValueProposition:
		v.UniqueValueProposition, ok = val.(string)
	case TargetCustomerSegment:
		v.TargetCustomerSegment, ok = val.(string)
	case EstimatedMarketSize:
		v.EstimatedMarketSize, ok = val.(float64)
	case GeographicFocus:
		v.GeographicFocus, ok = val.(string)
	case Competitors:
		var list []string
		list, ok = val.([]string)
		v.Competitors = append([]string{}, list...)
	case MarketGrowthRate:
		v.MarketGrowthRate, ok = val.(float64)
	case RevenueModel:
		v.RevenueModel, ok = val.(string)
	case PricingStrategy:
		v.PricingStrategy, ok = val.(string)
	case EstimatedMonthlyRevenue:
		v.EstimatedMonthlyRevenue, ok = val.(float64)
	case EstimatedBurnRate:
		v.EstimatedBurnRate, ok = val.(float64)
	case FundingStage:
		v.FundingStage, ok = val.(string)
	case RunwayDurationMonths:
		v.RunwayDurationMonths, ok = val.(int)
	case NumberOfFounders:
		v.NumberOfFounders, ok = val.(int)
	case FoundersBackground:
		v.FoundersBackground, ok = val.(string)
	case YearsOfExperience:
		v.YearsOfExperience, ok = val.(int)
	case TeamRatio:
		v.TeamRatio, ok = val.(string)
	case PreviousStartupExperience:
		v.PreviousStartupExperience, ok = val.(bool)
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	if !ok {
		return fmt.Errorf("%s: unexpected value type %T", key, val)
	}
	return nil
}
