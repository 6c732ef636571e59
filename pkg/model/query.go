package model

// QueryID monotonically increases with every keystroke-derived query. The
// search pane drops any SearchResults whose ID does not
// match the current latest_query_id.
type QueryID uint64

// QueryInput is produced once per debounced keystroke and consumed exactly
// once by the search worker (C3).
type QueryInput struct {
	ID   QueryID
	Text string
}

// SearchResults is the search worker's single response per QueryInput. It
// always carries the id of the query that produced it so stale responses
// can be identified without the worker tracking supersession itself.
type SearchResults struct {
	ID    QueryID
	Items []PackageItem
}
