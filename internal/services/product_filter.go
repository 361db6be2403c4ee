package services

import (
	"strings"

	"github.com/vitokorn/buy-me-a-gift/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductQuery holds the raw listing query parameters.
type ProductQuery struct {
	PriceGT string
	PriceLT string
	Sorting string // comma separated, e.g. "rank,-created_time"
}

// sortingFields maps the accepted sorting terms to product columns.
var sortingFields = map[string]string{
	"rank":         "rank",
	"created_time": "created_time",
}

// baseProductOrdering is layered after any explicit sorting.
var baseProductOrdering = []repositories.SortField{
	{Column: "price", Desc: true},
	{Column: "id"},
}

// BuildProductFilter translates query parameters into a repository filter.
// Empty parameters are ignored.
func BuildProductFilter(q ProductQuery) (repositories.ProductFilter, error) {
	var filter repositories.ProductFilter

	priceGT, err := parsePriceBound("price_gt", q.PriceGT)
	if err != nil {
		return filter, err
	}
	priceLT, err := parsePriceBound("price_lt", q.PriceLT)
	if err != nil {
		return filter, err
	}
	filter.PriceGT = priceGT
	filter.PriceLT = priceLT

	if q.Sorting != "" {
		for _, term := range strings.Split(q.Sorting, ",") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			desc := strings.HasPrefix(term, "-")
			column, ok := sortingFields[strings.TrimPrefix(term, "-")]
			if !ok {
				return filter, newError(ErrValidation, "Select a valid choice. %s is not one of the available choices.", term)
			}
			filter.OrderBy = append(filter.OrderBy, repositories.SortField{Column: column, Desc: desc})
		}
	}
	filter.OrderBy = append(filter.OrderBy, baseProductOrdering...)
	return filter, nil
}

func parsePriceBound(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, newError(ErrValidation, "%s: Enter a number.", name)
	}
	return &d, nil
}
