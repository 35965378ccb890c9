package lexicon

// Category classifies a phrase by polarity and strength
type Category int

const (
	StrongPositive   Category = iota // +2.0
	ModeratePositive                 // +1.0
	WeakPositive                     // +0.5
	WeakNegative                     // -0.5
	ModerateNegative                 // -1.0
	StrongNegative                   // -2.0
)

// categories lists every category in scan order
var categories = []Category{
	StrongPositive,
	ModeratePositive,
	WeakPositive,
	WeakNegative,
	ModerateNegative,
	StrongNegative,
}

// AllCategories returns the six categories in scan order
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Base returns the fixed base score of the category
func (c Category) Base() float64 {
	switch c {
	case StrongPositive:
		return 2.0
	case ModeratePositive:
		return 1.0
	case WeakPositive:
		return 0.5
	case WeakNegative:
		return -0.5
	case ModerateNegative:
		return -1.0
	case StrongNegative:
		return -2.0
	default:
		return 0
	}
}

// Key returns the name used for the category in lexicon documents
func (c Category) Key() string {
	switch c {
	case StrongPositive:
		return "strong_positive"
	case ModeratePositive:
		return "moderate_positive"
	case WeakPositive:
		return "weak_positive"
	case WeakNegative:
		return "weak_negative"
	case ModerateNegative:
		return "moderate_negative"
	case StrongNegative:
		return "strong_negative"
	default:
		return "unknown"
	}
}

func (c Category) String() string {
	return c.Key()
}
