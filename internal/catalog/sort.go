package catalog

import (
	"sort"

	"github.com/huydhb/greenfarm-backend/pkg/enums"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func sortProducts(list []Product, key enums.SortKey) {
	switch key {
	case enums.SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].EffectivePrice().LessThan(list[j].EffectivePrice())
		})
	case enums.SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].EffectivePrice().GreaterThan(list[j].EffectivePrice())
		})
	case enums.SortNameAsc:
		c := newNameCollator()
		sort.SliceStable(list, func(i, j int) bool {
			return c.CompareString(list[i].Name, list[j].Name) < 0
		})
	case enums.SortNameDesc:
		c := newNameCollator()
		sort.SliceStable(list, func(i, j int) bool {
			return c.CompareString(list[j].Name, list[i].Name) < 0
		})
	}
}

// A collator keeps internal buffers and must not be shared across goroutines.
func newNameCollator() *collate.Collator {
	return collate.New(language.Vietnamese, collate.IgnoreCase, collate.IgnoreDiacritics)
}
