package meeting

// SearchRequest is the body for similarity search over indexed chunks.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	K     int    `json:"k" validate:"omitempty,min=1,max=50"`
}
