package catalog

import "strings"

// Category is stored by its stable code; users see the Russian label.
type Category string

const (
	Snus        Category = "snus"
	Pods        Category = "pods"
	Liquids     Category = "liquids"
	Plastics    Category = "plastics"
	Consumables Category = "consumables"
)

type meta struct {
	label string
	emoji string
}

var known = map[Category]meta{
	Snus:        {label: "снюс", emoji: "🌿"},
	Pods:        {label: "поды", emoji: "📱"},
	Liquids:     {label: "жидкости", emoji: "💧"},
	Plastics:    {label: "пластики", emoji: "🔋"},
	Consumables: {label: "расходники", emoji: "🔧"},
}

// All returns the categories in menu order.
func All() []Category {
	return []Category{Snus, Pods, Liquids, Plastics, Consumables}
}

// Labels returns the display labels in menu order.
func Labels() []string {
	out := make([]string, 0, len(known))
	for _, c := range All() {
		out = append(out, c.Label())
	}
	return out
}

// ParseLabel matches a display label case-insensitively. Codes are not accepted.
func ParseLabel(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range All() {
		if known[c].label == s {
			return c, true
		}
	}
	return "", false
}

// ParseCode validates a stored or callback code.
func ParseCode(s string) (Category, bool) {
	c := Category(s)
	_, ok := known[c]
	return c, ok
}

func (c Category) Valid() bool {
	_, ok := known[c]
	return ok
}

func (c Category) Label() string {
	if m, ok := known[c]; ok {
		return m.label
	}
	return string(c)
}

func (c Category) Emoji() string {
	if m, ok := known[c]; ok {
		return m.emoji
	}
	return "📦"
}

// Title is the emoji plus the capitalised label, used for headers and buttons.
func (c Category) Title() string {
	label := []rune(c.Label())
	if len(label) > 0 {
		label[0] = []rune(strings.ToUpper(string(label[0])))[0]
	}
	return c.Emoji() + " " + string(label)
}

// Stat is a per-category summary of the catalog.
type Stat struct {
	Category Category
	Brands   int
	Products int
	Units    int
}
