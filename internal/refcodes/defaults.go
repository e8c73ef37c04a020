package refcodes

// DefaultCodes returns the reference codes written by a new project: the
// record types, the Findex pillars and the event categories used in the
// unified dataset.
func DefaultCodes() []Code {
	return []Code{
		{Field: "record_type", Code: "observation", Description: "Measured value of an indicator", AppliesTo: "All"},
		{Field: "record_type", Code: "event", Description: "Policy, product launch or market event", AppliesTo: "All"},
		{Field: "record_type", Code: "impact_link", Description: "Modeled effect of an event on an indicator", AppliesTo: "All"},
		{Field: "record_type", Code: "target", Description: "Official policy target", AppliesTo: "All"},

		{Field: "pillar", Code: "ACCESS", Description: "Account ownership and access to services", AppliesTo: "observation, impact_link, target"},
		{Field: "pillar", Code: "USAGE", Description: "Use of digital payments and accounts", AppliesTo: "observation, impact_link, target"},
		{Field: "pillar", Code: "QUALITY", Description: "Quality and reliability of services", AppliesTo: "observation, impact_link, target"},
		{Field: "pillar", Code: "GENDER", Description: "Gender gap in inclusion", AppliesTo: "observation, impact_link, target"},
		{Field: "pillar", Code: "AFFORDABILITY", Description: "Cost of services to users", AppliesTo: "observation, impact_link, target"},

		{Field: "category", Code: "policy", Description: "Government policy or strategy", AppliesTo: "event"},
		{Field: "category", Code: "product_launch", Description: "New financial product or service", AppliesTo: "event"},
		{Field: "category", Code: "infrastructure", Description: "Network or payment infrastructure", AppliesTo: "event"},
		{Field: "category", Code: "market_entry", Description: "New operator entering the market", AppliesTo: "event"},
		{Field: "category", Code: "regulation", Description: "Regulatory directive", AppliesTo: "event"},
		{Field: "category", Code: "partnership", Description: "Interoperability or partnership agreement", AppliesTo: "event"},

		{Field: "gender", Code: "all", Description: "Both sexes", AppliesTo: "observation"},
		{Field: "gender", Code: "male", Description: "Men", AppliesTo: "observation"},
		{Field: "gender", Code: "female", Description: "Women", AppliesTo: "observation"},

		{Field: "location", Code: "national", Description: "Whole country", AppliesTo: "observation"},
		{Field: "location", Code: "urban", Description: "Urban population", AppliesTo: "observation"},
		{Field: "location", Code: "rural", Description: "Rural population", AppliesTo: "observation"},
	}
}
