// Package mw carries the HTTP middleware of the API: response caching and
// per-IP rate limiting.
package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

// bodyCacheWriter tees the response body into a buffer while it streams to
// the client.
type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache memoizes successful GET responses keyed by the full request URI, so
// every distinct filter combination caches separately. The store is shared
// with the refresh loop, which flushes it whenever a new collection is
// applied; the TTL is only a backstop between flushes.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if v, found := store.Get(key); found {
			cached := v.(cachedResponse)
			for k, vals := range cached.headers {
				c.Writer.Header()[k] = vals
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		bcw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = bcw

		c.Next()

		// Only cache successful responses.
		if bcw.Status() >= 200 && bcw.Status() < 300 {
			store.Set(key, cachedResponse{
				status:  bcw.Status(),
				headers: bcw.Header().Clone(),
				body:    bcw.body.Bytes(),
			}, ttl)
		}
	}
}
