package endpoints

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/chat"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/public/packets"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/metrics"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/security"
)

const maxChatMessage = 500

type Chat struct {
	store     db.Store
	responder *chat.Responder
	sanitizer *security.TextSanitizer
	metrics   *metrics.Collector
}

func NewChat(store db.Store, responder *chat.Responder, sanitizer *security.TextSanitizer, m *metrics.Collector) *Chat {
	return &Chat{store: store, responder: responder, sanitizer: sanitizer, metrics: m}
}

func ChatModule(c *Chat) api.Module {
	return api.ModuleFunc(func(ctl *api.Controller) {
		ctl.PUBLIC_GET("/chat", c.greeting)
		ctl.PUBLIC_POST("/chat", c.reply)
	})
}

// GET /api/public/chat
func (c *Chat) greeting(ctx *gin.Context) (any, *api.APIError) {
	return packets.ChatResponse{Reply: chat.Greeting}, nil
}

// POST /api/public/chat
func (c *Chat) reply(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	message := c.sanitizer.Clean(request.Message)
	if message == "" {
		return nil, api.NewError(http.StatusBadRequest, "message is required")
	}
	if utf8.RuneCountInString(message) > maxChatMessage {
		return nil, api.NewError(http.StatusBadRequest, "message is too long")
	}

	reply := c.responder.Respond(message, c.store.GetTimetable())
	if c.metrics != nil {
		c.metrics.RecordChatReply(reply.Rule)
	}
	log.Debug().Str("rule", reply.Rule).Msg("chat reply")
	return packets.ChatResponse{Reply: reply.Text}, nil
}
