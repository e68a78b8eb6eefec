package httpresp

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

// Page is the envelope for paginated listings.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the envelope with next/previous links relative to the
// current request URL.
func NewPage[T any](c *gin.Context, count int64, page, pageSize int, results []T) Page[T] {
	p := Page[T]{Count: count, Results: results}

	last := int((count + int64(pageSize) - 1) / int64(pageSize))
	if page < last {
		p.Next = pageURL(c, page+1, pageSize)
	}
	if page > 1 {
		p.Previous = pageURL(c, page-1, pageSize)
	}
	return p
}

func pageURL(c *gin.Context, page, pageSize int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	q := c.Request.URL.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("page_size", fmt.Sprintf("%d", pageSize))

	u := fmt.Sprintf("%s://%s%s?%s", scheme, c.Request.Host, c.Request.URL.Path, q.Encode())
	return &u
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes a bare 204. gin suppresses bodies for 204, so there
// is no point handing it a payload.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
