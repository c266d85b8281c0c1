package models

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PagedResponse wraps list endpoints with the total row count so the client
// can render pagination without a second query.
type PagedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
