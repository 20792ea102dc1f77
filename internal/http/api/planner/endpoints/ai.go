package endpoints

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/packets"
)

// AIModule is a placeholder assistant that echoes the message back until a
// model is wired in.
func AIModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/ai/chat", chat)
	})
}

// POST /api/ai/chat
func chat(ctx *gin.Context) (any, *api.APIError) {
	var req packets.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest("Message and history are required.")
	}

	log.Debug().Str("mode", req.Mode).Int("history", len(req.History)).Msg("chat message received")
	return packets.ChatResponse{
		Text: fmt.Sprintf("You said: %q. The AI is processing this in %q mode.", req.Message, req.Mode),
	}, nil
}
