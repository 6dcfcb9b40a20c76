package dto

import "github.com/gin-gonic/gin"

// ListMeta carries pagination metadata for list responses
type ListMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	Limit       int   `json:"limit"`
}

// NewListMeta derives pagination metadata from page, limit and total count
func NewListMeta(page, limit int, total int64) ListMeta {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return ListMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
	}
}

// Envelope wraps a single resource as {data}
func Envelope(data interface{}) gin.H {
	return gin.H{"data": data}
}

// ListEnvelope wraps a list as {data, meta}
func ListEnvelope(data interface{}, meta ListMeta) gin.H {
	return gin.H{"data": data, "meta": meta}
}
