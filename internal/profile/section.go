package profile

// Section is one of the four fixed steps of the entry workflow.
type Section struct {
	Index int
	Name  string
	Keys  []Key
}

// Section indexes.
const (
	SectionBusiness  = 0
	SectionMarket    = 1
	SectionFinancial = 2
	SectionTeam      = 3
)

var sections = []Section{
	{
		Index: SectionBusiness,
		Name:  "Business",
		Keys: []Key{
			StartupName,
			ProblemStatement,
			SolutionDescription,
			UniqueValueProposition,
			TargetCustomerSegment,
		},
	},
	{
		Index: SectionMarket,
		Name:  "Market",
		Keys:  []Key{EstimatedMarketSize, GeographicFocus, Competitors, MarketGrowthRate},
	},
	{
		Index: SectionFinancial,
		Name:  "Financial",
		Keys: []Key{
			RevenueModel,
			PricingStrategy,
			EstimatedMonthlyRevenue,
			EstimatedBurnRate,
			FundingStage,
			RunwayDurationMonths,
		},
	},
	{
		Index: SectionTeam,
		Name:  "Team",
		Keys: []Key{
			NumberOfFounders,
			FoundersBackground,
			YearsOfExperience,
			TeamRatio,
			PreviousStartupExperience,
		},
	},
}

// SectionCount is the number of sections in the workflow.
const SectionCount = 4

// Sections returns the four sections in order.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.clone()
	}
	return out
}

// SectionAt returns the section at index i. It panics if i is out of range.
func SectionAt(i int) Section {
	return sections[i].clone()
}

// SectionOf returns the section that owns key.
func SectionOf(key Key) (Section, bool) {
	for _, s := range sections {
		if s.Owns(key) {
			return s.clone(), true
		}
	}
	return Section{}, false
}

// Owns reports whether key belongs to the section.
func (s Section) Owns(key Key) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

func (s Section) clone() Section {
	keys := make([]Key, len(s.Keys))
	copy(keys, s.Keys)
	s.Keys = keys
	return s
}
