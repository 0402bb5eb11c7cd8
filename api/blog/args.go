package blog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inklinehq/Inkline-CLI/utils"
)

// Categories accepted by the content API, in display order.
var Categories = []string{
	"Programming",
	"Data-science",
	"Business",
	"Technology",
	"Development",
	"Travel",
}

// CanonicalCategory matches cat against the known categories without
// caring about case and returns the canonical spelling. Unknown
// categories are returned trimmed but otherwise as given, since the
// server may know categories this build does not.
func CanonicalCategory(cat string) string {
	cat = strings.TrimSpace(cat)
	for _, known := range Categories {
		if strings.EqualFold(known, cat) {
			return known
		}
	}
	return cat
}

// Sort orders accepted by the posts listing.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortTitleAz = "az"
	SortTitleZa = "za"
)

var validSortValues = map[string]struct{}{
	SortNewest:  {},
	SortOldest:  {},
	SortTitleAz: {},
	SortTitleZa: {},
}

// IsValidSort reports whether s is one of the accepted sort orders.
func IsValidSort(s string) bool {
	_, ok := validSortValues[s]
	return ok
}

// PostFilters narrows down the posts listing.
type PostFilters struct {
	Query    string
	Category string
	Sort     string
	Limit    int
	Offset   int
}

// ValidateArgs normalizes the filters.
//
// Should be called after initialising the struct.
func (f *PostFilters) ValidateArgs() {
	f.Query = strings.TrimSpace(f.Query)
	f.Category = CanonicalCategory(f.Category)

	if f.Sort == "" {
		f.Sort = SortNewest
	}
	if _, ok := validSortValues[f.Sort]; !ok {
		panic(
			fmt.Errorf(
				"error %d: invalid sort order %q",
				utils.DEV_ERROR,
				f.Sort,
			),
		)
	}

	if f.Limit < 0 || f.Offset < 0 {
		panic(
			fmt.Errorf(
				"error %d: limit and offset cannot be negative",
				utils.DEV_ERROR,
			),
		)
	}
}

func (f *PostFilters) params() map[string]string {
	params := make(map[string]string)
	if f.Query != "" {
		params["q"] = f.Query
	}
	if f.Category != "" {
		params["cat"] = f.Category
	}
	if f.Sort != "" {
		params["sort"] = f.Sort
	}
	if f.Limit > 0 {
		params["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		params["offset"] = strconv.Itoa(f.Offset)
	}
	return params
}
