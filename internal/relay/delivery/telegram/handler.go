package telegram

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chat-relay/internal/relay"
	pkgResponse "chat-relay/pkg/response"
	pkgTelegram "chat-relay/pkg/telegram"
)

// HandleWebhook acknowledges every well-authenticated update with 200 and the
// relay ack; the reply is produced after the response is written.
// @Summary Telegram webhook
// @Description Receives Bot API updates. Malformed updates are acknowledged and dropped.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-Telegram-Bot-Api-Secret-Token header string false "Secret registered with setWebhook"
// @Success 200 {object} response.Resp "Update acknowledged"
// @Failure 403 {object} response.Resp "Bad secret or caller not allowed"
// @Failure 429 {object} response.Resp "Chat rate limit exceeded"
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.guard.validateSecret(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "relay.delivery.telegram.HandleWebhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}
	if err := h.guard.validateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "relay.delivery.telegram.HandleWebhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Warnf(ctx, "relay.delivery.telegram.HandleWebhook: failed to parse update: %v", err)
		pkgResponse.OK(c, relay.Ack{Status: relay.AckIgnored})
		return
	}

	msg, err := toInbound(update, h.sentinel)
	if err != nil {
		h.l.Debugf(ctx, "relay.delivery.telegram.HandleWebhook: %v", err)
		pkgResponse.OK(c, relay.Ack{Status: relay.AckIgnored})
		return
	}

	if err := h.guard.checkRateLimit(strconv.FormatInt(msg.ChatID, 10)); err != nil {
		h.l.Warnf(ctx, "relay.delivery.telegram.HandleWebhook: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	pkgResponse.OK(c, h.uc.OnInboundMessage(ctx, msg))
}
