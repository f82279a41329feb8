package nd

import (
	"net/url"
	"strconv"
)

// QueryFilter carries the generic query parameters accepted by
// collection endpoints.
type QueryFilter struct {
	// Filter is a Lucene-style filter string,
	// e.g. "prop1:value1 AND prop2:value2".
	Filter string

	// Limit caps the number of results to return.
	Limit int

	// Max is the maximum number of results to return.
	Max int

	// Offset is the number of records to skip into the result set.
	Offset int

	// Sort is a comma-separated list of properties to sort by.
	// Prefix a property with '-' for descending order, e.g. "prop1,-prop2".
	Sort string
}

// Encode returns the URL-encoded query string for the set parameters.
// Unset (zero) parameters are omitted; an empty filter encodes to "".
func (q QueryFilter) Encode() string {
	v := url.Values{}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Max > 0 {
		v.Set("max", strconv.Itoa(q.Max))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v.Encode()
}

// Apply appends the encoded query string to path, if any parameters
// are set.
func (q QueryFilter) Apply(path string) string {
	qs := q.Encode()
	if qs == "" {
		return path
	}
	return path + "?" + qs
}
