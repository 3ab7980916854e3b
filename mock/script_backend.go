package mock_backends

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
)

// cannedScript mimics a back-end that thinks out loud before restating the
// real story, so the local stack exercises the last-marker extraction.
const cannedScript = `Let me plan this story first.
Page 1: could open with the hero waking up, but a rhyme would be better.
Here is the final story:

Page 1: Bolt the brave little robot woke up with a beep, ready to leap!
Page 2: He rolled through the forest where glowing mushrooms sleep.
Page 3: Behind a waterfall he found a temple old and tall.
Page 4: Bolt shared his treasure with friends, the bravest deed of all!`

type scriptBackend struct {
	logger outbound.LoggerPort
}

func NewScriptBackend(logger outbound.LoggerPort) *scriptBackend {
	return &scriptBackend{logger: logger}
}

// Handle streams the canned script as chat-completion SSE chunks, one word
// per chunk, ending with the [DONE] signal. Non-streaming requests (the
// style derivation call) get a plain JSON completion instead.
func (s *scriptBackend) Handle(c *gin.Context) {
	var req struct {
		Stream bool `json:"stream"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && !req.Stream {
		c.JSON(200, gin.H{
			"choices": []gin.H{
				{"message": gin.H{"content": "soft watercolor, warm pastel palette, gentle storybook mood"}},
			},
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	words := strings.SplitAfter(cannedScript, " ")
	for _, word := range words {
		chunk := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"index": 0, "delta": map[string]string{"content": word}},
			},
		}
		payload, err := json.Marshal(chunk)
		if err != nil {
			s.logger.Error(err, "Failed to marshal mock script chunk")
			return
		}
		if _, err := c.Writer.WriteString("data: " + string(payload) + "\n\n"); err != nil {
			return
		}
		c.Writer.Flush()
	}

	if _, err := c.Writer.WriteString("data: [DONE]\n\n"); err != nil {
		return
	}
	c.Writer.Flush()
}
