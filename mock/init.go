// Package mock_backends serves canned script, image and speech endpoints so
// the full pipeline can run locally without back-end API keys. Enable with
// MOCK_BACKENDS=true and point the adapter URLs at this server.
package mock_backends

import (
	"github.com/gin-gonic/gin"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
)

func Init(g *gin.Engine, logger outbound.LoggerPort) {
	scriptBackend := NewScriptBackend(logger)
	mediaBackend := NewMediaBackend(logger)

	g.POST("/mock/v1/chat/completions", scriptBackend.Handle)
	g.POST("/mock/v1/images/generations", mediaBackend.HandleImage)
	g.POST("/mock/v1/text-to-speech/:voice", mediaBackend.HandleSpeech)
}
