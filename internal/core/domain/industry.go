package domain

import "strings"

// IndustryCategory is one sector of the keyword taxonomy.
// Values are fixed at construction; accessors hand out copies.
type IndustryCategory struct {
	key      string
	name     string
	color    string
	icon     string
	keywords []string
}

// NewIndustryCategory builds a category. Keywords are lower-cased.
func NewIndustryCategory(key, name, color, icon string, keywords ...string) IndustryCategory {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return IndustryCategory{
		key:      key,
		name:     name,
		color:    color,
		icon:     icon,
		keywords: lowered,
	}
}

// Key returns the stable category key (e.g. "small_business").
func (c IndustryCategory) Key() string { return c.key }

// Name returns the display name.
func (c IndustryCategory) Name() string { return c.name }

// Color returns the display color.
func (c IndustryCategory) Color() string { return c.color }

// Icon returns the display icon name.
func (c IndustryCategory) Icon() string { return c.icon }

// Keywords returns a copy of the category's keywords.
func (c IndustryCategory) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Taxonomy is an ordered, immutable set of industry categories.
// Declaration order breaks score ties.
type Taxonomy struct {
	categories []IndustryCategory
}

// NewTaxonomy builds a taxonomy from categories in declaration order.
func NewTaxonomy(categories ...IndustryCategory) Taxonomy {
	cats := make([]IndustryCategory, len(categories))
	copy(cats, categories)
	return Taxonomy{categories: cats}
}

// Categories returns the categories in declaration order.
func (t Taxonomy) Categories() []IndustryCategory {
	out := make([]IndustryCategory, len(t.categories))
	copy(out, t.categories)
	return out
}

// Len returns the number of categories.
func (t Taxonomy) Len() int {
	return len(t.categories)
}

// Lookup returns the category with the given key.
func (t Taxonomy) Lookup(key string) (IndustryCategory, bool) {
	for _, c := range t.categories {
		if c.key == key {
			return c, true
		}
	}
	return IndustryCategory{}, false
}

// DefaultTaxonomy returns the built-in NAICS-aligned sector taxonomy.
func DefaultTaxonomy() Taxonomy {
	return defaultTaxonomy
}

var defaultTaxonomy = NewTaxonomy(
	NewIndustryCategory("healthcare", "Healthcare", "rose", "health",
		"health", "medical", "hospital", "patient", "physician", "drug", "pharmaceutical", "medicine",
		"clinical", "healthcare", "nursing", "therapy", "treatment", "disease", "vaccine", "FDA"),
	NewIndustryCategory("finance", "Finance", "emerald", "finance",
		"bank", "banking", "financial", "credit", "loan", "mortgage", "insurance", "investment",
		"securities", "broker", "dealer", "lending", "interest", "rate", "treasury", "fiscal", "monetary"),
	NewIndustryCategory("energy", "Energy", "amber", "energy",
		"energy", "oil", "gas", "petroleum", "nuclear", "electric", "utility", "pipeline",
		"fuel", "coal", "power", "renewable", "solar", "wind", "grid", "emission", "carbon"),
	NewIndustryCategory("manufacturing", "Manufacturing", "blue", "manufacturing",
		"manufacturing", "factory", "industrial", "production", "plant", "equipment", "machinery",
		"assembly", "fabrication", "processing", "facility", "warehouse"),
	NewIndustryCategory("technology", "Technology", "violet", "technology",
		"technology", "software", "computer", "digital", "electronic", "data", "cyber", "internet",
		"network", "telecommunications", "wireless", "broadband", "spectrum", "communication"),
	NewIndustryCategory("agriculture", "Agriculture", "lime", "agriculture",
		"agriculture", "farm", "crop", "livestock", "animal", "food", "grain", "dairy", "meat",
		"poultry", "pesticide", "fertilizer", "organic", "USDA", "agricultural"),
	NewIndustryCategory("transportation", "Transportation", "cyan", "transportation",
		"transportation", "vehicle", "motor", "carrier", "freight", "shipping", "rail", "railroad",
		"aviation", "aircraft", "airline", "airport", "highway", "road", "traffic", "safety", "DOT"),
	NewIndustryCategory("construction", "Construction", "orange", "construction",
		"construction", "building", "housing", "real", "estate", "property", "contractor", "architect",
		"engineer", "zoning", "permit", "land", "development", "residential", "commercial"),
	NewIndustryCategory("environment", "Environment", "teal", "environment",
		"environment", "environmental", "pollution", "emission", "waste", "hazardous", "contamination",
		"cleanup", "remediation", "air", "water", "soil", "EPA", "ecological", "conservation"),
	NewIndustryCategory("labor", "Labor", "pink", "labor",
		"labor", "worker", "employee", "employer", "wage", "salary", "overtime", "union", "workplace",
		"occupational", "safety", "OSHA", "employment", "hiring", "discrimination"),
	NewIndustryCategory("defense", "Defense", "slate", "defense",
		"defense", "military", "army", "navy", "marine", "air", "force", "weapon", "procurement",
		"contract", "security", "classified", "veteran", "armed", "forces", "DOD"),
	NewIndustryCategory("education", "Education", "indigo", "education",
		"education", "school", "student", "university", "college", "teacher", "academic", "curriculum",
		"grant", "loan", "financial", "aid", "institution", "learning", "training"),
	NewIndustryCategory("small_business", "Small Business", "fuchsia", "small_business",
		"small", "business", "entrepreneur", "startup", "minority", "women-owned", "disadvantaged",
		"SBA", "procurement", "contract", "set-aside", "size", "standard"),
	NewIndustryCategory("trade", "Trade", "sky", "trade",
		"trade", "import", "export", "tariff", "customs", "duty", "quota", "international", "commerce",
		"foreign", "border", "goods", "merchandise", "antidumping", "countervailing"),
)
