package mock_backends

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
)

// onePixelGif is a valid 1x1 image, small enough to inline.
var onePixelGif = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

var silentMp3Frame = []byte{
	0xff, 0xfb, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

type mediaBackend struct {
	logger outbound.LoggerPort
}

func NewMediaBackend(logger outbound.LoggerPort) *mediaBackend {
	return &mediaBackend{logger: logger}
}

func (m *mediaBackend) HandleImage(c *gin.Context) {
	c.JSON(200, gin.H{
		"data": []gin.H{
			{"b64_json": base64.StdEncoding.EncodeToString(onePixelGif)},
		},
	})
}

func (m *mediaBackend) HandleSpeech(c *gin.Context) {
	m.logger.DebugWithFields("Serving mock speech", map[string]interface{}{
		"voice": c.Param("voice"),
	})
	c.Data(200, "audio/mpeg", silentMp3Frame)
}
