package catalog

import (
	"strconv"
	"strings"
)

// ListingParams is the full ordered parameter set of the listing endpoint.
// Key derivation walks the fields in declaration order, so two requests with
// identical parameters always produce the same cache key and any differing
// parameter produces a different one. An unset parameter is encoded as an
// empty marker rather than omitted, keeping key identity aligned with
// parameter identity.
type ListingParams struct {
	Search     string
	Page       string
	PageSize   string
	Platforms  string
	Genres     string
	Ordering   string
	ESRBRating string
}

// ListingKey derives the canonical cache key for a listing request.
func ListingKey(p ListingParams) string {
	var b strings.Builder
	b.WriteString("/games")

	pairs := []struct {
		name  string
		value string
	}{
		{"search", p.Search},
		{"page", p.Page},
		{"page_size", p.PageSize},
		{"platforms", p.Platforms},
		{"genres", p.Genres},
		{"ordering", p.Ordering},
		{"esrb_rating", p.ESRBRating},
	}

	for i, pair := range pairs {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(pair.name)
		b.WriteByte('=')
		b.WriteString(pair.value)
	}

	return b.String()
}

// DetailKey derives the cache key for a game-detail request.
func DetailKey(id int64) string {
	return "/games/" + strconv.FormatInt(id, 10)
}

// SearchKey derives the cache key for a free-text search request.
func SearchKey(query string) string {
	return "/search/" + query
}
