package types

// SearchRequest holds the query parameters of a search.
type SearchRequest struct {
	Query string `form:"q"`
}

// HistoryRequest holds the query parameters of the recent searches listing.
type HistoryRequest struct {
	Limit int `form:"limit"`
}
