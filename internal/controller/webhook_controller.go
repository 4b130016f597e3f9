package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"rumorcheck-be/internal/lineutil"
	"rumorcheck-be/internal/pkg/logger"
	"rumorcheck-be/internal/service"
	"rumorcheck-be/pkg/message"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Callback(ctx *fiber.Ctx) error
}

type webhookController struct {
	conversation  service.IConversationService
	channelSecret string
	messagingAPI  *messaging_api.MessagingApiAPI
	logger        logger.ILogger
}

func NewWebhookController(
	conversation service.IConversationService,
	channelSecret string,
	messagingAPI *messaging_api.MessagingApiAPI,
	log logger.ILogger,
) IWebhookController {
	return &webhookController{
		conversation:  conversation,
		channelSecret: channelSecret,
		messagingAPI:  messagingAPI,
		logger:        log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post("/callback", c.Callback)
}

// Callback receives the platform's webhook delivery. It always answers 200
// once the signature checks out: the platform retries non-2xx deliveries,
// and a retried turn would double-process user input.
func (c *webhookController) Callback(ctx *fiber.Ctx) error {
	httpReq, err := adaptor.ConvertRequest(ctx, true)
	if err != nil {
		c.logger.Error("webhook", "failed to convert request", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	cb, err := webhook.ParseRequest(c.channelSecret, httpReq)
	if err != nil {
		if err == webhook.ErrInvalidSignature {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}
		c.logger.Error("webhook", "failed to parse webhook body", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	for _, event := range cb.Events {
		c.handleEvent(ctx.UserContext(), event)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

func (c *webhookController) handleEvent(ctx context.Context, event webhook.EventInterface) {
	switch ev := event.(type) {
	case webhook.MessageEvent:
		text, ok := ev.Message.(webhook.TextMessageContent)
		if !ok {
			// Stickers, images and the rest have nothing to look up.
			return
		}
		replies, err := c.conversation.HandleTextMessage(ctx, userID(ev.Source), text.Text, ev.Timestamp)
		c.respond(ev.ReplyToken, replies, err)

	case webhook.PostbackEvent:
		payload, err := message.DecodePostback(ev.Postback.Data)
		if err != nil {
			c.logger.Warn("webhook", "undecodable postback, ignoring", map[string]interface{}{
				"data":  ev.Postback.Data,
				"error": err.Error(),
			})
			return
		}
		replies, err := c.conversation.HandleTextMessage(ctx, userID(ev.Source), payload.Input, ev.Timestamp)
		c.respond(ev.ReplyToken, replies, err)

	case webhook.FollowEvent:
		replies, err := c.conversation.HandleFollow(ctx, userID(ev.Source))
		c.respond(ev.ReplyToken, replies, err)
	}
}

// respond sends the turn's replies back through the reply token. A failed
// turn is logged and swallowed: the user gets silence rather than the
// platform endlessly retrying the same broken event.
func (c *webhookController) respond(replyToken string, replies []message.Message, err error) {
	if err != nil {
		c.logger.Error("webhook", "conversation turn failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if len(replies) == 0 {
		return
	}

	if _, err := c.messagingAPI.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   lineutil.ToLineMessages(replies),
	}); err != nil {
		c.logger.Error("webhook", "failed to send reply", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func userID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
