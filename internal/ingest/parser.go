// Package ingest turns the admin's batch message into catalog items.
//
// Canonical line:  category | brand | flavor | quantity | price
// Legacy line:     category | title | quantity | price
//
// Every line is validated on its own: a bad line yields a numbered error
// and never blocks the others.
package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/florzoye/shop/internal/domain/catalog"
)

// DefaultFlavor is assigned to legacy lines, which carry no flavor column.
const DefaultFlavor = "стандарт"

const minNameLen = 2

type Item struct {
	Line     int
	Category catalog.Category
	Brand    string
	Flavor   string
	Quantity int
	Price    float64
}

type Parser struct {
	legacy bool
}

func NewParser(legacy bool) Parser { return Parser{legacy: legacy} }

func (p Parser) Fields() int {
	if p.legacy {
		return 4
	}
	return 5
}

// Parse returns the valid items and one message per rejected line. Blank
// lines are skipped and not numbered; blank input gives neither items nor errors.
func (p Parser) Parse(text string) ([]Item, []string) {
	var items []Item
	var errs []string

	n := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		n++
		item, err := p.parseLine(n, line)
		if err != "" {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

// Parse uses the canonical five-field format.
func Parse(text string) ([]Item, []string) { return NewParser(false).Parse(text) }

// ParseLegacy uses the four-field format.
func ParseLegacy(text string) ([]Item, []string) { return NewParser(true).Parse(text) }

func (p Parser) parseLine(n int, line string) (Item, string) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != p.Fields() {
		return Item{}, lineErr(n, "неверное количество полей (ожидается %d, получено %d)", p.Fields(), len(parts))
	}

	item := Item{Line: n}

	c, ok := catalog.ParseLabel(parts[0])
	if !ok {
		return Item{}, lineErr(n, "неизвестная категория '%s'. Доступные: %s", parts[0], strings.Join(catalog.Labels(), ", "))
	}
	item.Category = c

	rest := parts[1:]
	if p.legacy {
		item.Brand = rest[0]
		item.Flavor = DefaultFlavor
		if utf8.RuneCountInString(item.Brand) < minNameLen {
			return Item{}, lineErr(n, "название товара слишком короткое")
		}
		rest = rest[1:]
	} else {
		item.Brand, item.Flavor = rest[0], rest[1]
		if utf8.RuneCountInString(item.Brand) < minNameLen {
			return Item{}, lineErr(n, "название бренда слишком короткое")
		}
		if utf8.RuneCountInString(item.Flavor) < minNameLen {
			return Item{}, lineErr(n, "название вкуса слишком короткое")
		}
		rest = rest[2:]
	}

	qty, err := strconv.Atoi(rest[0])
	if err != nil {
		return Item{}, lineErr(n, "'%s' не является числом", rest[0])
	}
	if qty < 0 {
		return Item{}, lineErr(n, "количество не может быть отрицательным")
	}
	item.Quantity = qty

	price, err := ParsePrice(rest[1])
	if errors.Is(err, ErrPriceScale) {
		return Item{}, lineErr(n, "цена '%s': не больше двух знаков после запятой", rest[1])
	}
	if err != nil {
		return Item{}, lineErr(n, "'%s' не является числом", rest[1])
	}
	if price <= 0 {
		return Item{}, lineErr(n, "цена должна быть больше 0")
	}
	item.Price = price

	return item, ""
}

var (
	ErrNotNumber  = errors.New("not a plain decimal number")
	ErrPriceScale = errors.New("more than two decimal places")
)

// Prices are stored as NUMERIC(12,2).
var pricePattern = regexp.MustCompile(`^(-?\d{1,10})(?:[.,](\d+))?$`)

// ParsePrice reads a plain decimal with ',' or '.' as the separator and at
// most two fractional digits. Exponents, hex and Inf/NaN are rejected.
func ParsePrice(s string) (float64, error) {
	m := pricePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, ErrNotNumber
	}
	if len(m[2]) > 2 {
		return 0, ErrPriceScale
	}
	num := m[1]
	if m[2] != "" {
		num += "." + m[2]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	return v, nil
}

func lineErr(n int, format string, args ...any) string {
	return fmt.Sprintf("⚠️ Строка %d: ", n) + fmt.Sprintf(format, args...)
}
