package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
)

const streamWriterKey = "streamWriter"

var keepaliveInterval = 15 * time.Second

// StreamWriter serializes frame writes to one SSE connection. The keepalive
// task and the request handler share the underlying response writer, which
// is not safe for concurrent use, so every frame goes through the same lock.
type StreamWriter struct {
	mu     sync.Mutex
	writer gin.ResponseWriter
}

// WriteFrame writes one complete frame and flushes it.
func (w *StreamWriter) WriteFrame(frame string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.writer.WriteString(frame); err != nil {
		return err
	}
	w.writer.Flush()
	return nil
}

// StreamWriterFor returns the request's shared stream writer. Handlers
// behind SSEMiddleware must route every write through it.
func StreamWriterFor(c *gin.Context) *StreamWriter {
	if value, exists := c.Get(streamWriterKey); exists {
		if writer, ok := value.(*StreamWriter); ok {
			return writer
		}
	}
	return &StreamWriter{writer: c.Writer}
}

// SSEMiddleware sets event-stream headers and keeps the connection warm
// with comment-line keepalives until the client disconnects.
func SSEMiddleware(workerPool outbound.TaskDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		streamWriter := &StreamWriter{writer: c.Writer}
		c.Set(streamWriterKey, streamWriter)

		clientGone := c.Request.Context().Done()

		err := workerPool.Submit(func() {
			ticker := time.NewTicker(keepaliveInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if err := streamWriter.WriteFrame(": keepalive\n\n"); err != nil {
						return
					}
				case <-clientGone:
					return
				}
			}
		})
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
			return
		}

		c.Next()
	}
}
