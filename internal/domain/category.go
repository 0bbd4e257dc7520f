package domain

import "strings"

// Category is the closed set of topic labels a headline can be filed under.
type Category string

const (
	CategoryPolitics      Category = "Politics"
	CategoryTechnology    Category = "Technology"
	CategoryHealth        Category = "Health"
	CategoryBusiness      Category = "Business"
	CategorySports        Category = "Sports"
	CategoryScience       Category = "Science"
	CategoryWeather       Category = "Weather"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	// CategoryOther is the overflow sink for unrecognized labels and
	// excess classifications. It must always exist.
	CategoryOther Category = "Other"
)

// Categories returns all categories in declaration order. Rendering and
// iteration follow this order, with Other always last.
func Categories() []Category {
	return []Category{
		CategoryPolitics,
		CategoryTechnology,
		CategoryHealth,
		CategoryBusiness,
		CategorySports,
		CategoryScience,
		CategoryWeather,
		CategoryEducation,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ParseCategory maps a model-produced label onto the closed set. Unknown
// labels deterministically resolve to Other.
func ParseCategory(label string) Category {
	label = strings.TrimSpace(label)
	for _, cat := range Categories() {
		if strings.EqualFold(label, string(cat)) {
			return cat
		}
	}
	return CategoryOther
}
