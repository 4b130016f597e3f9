// Package lineutil translates the transport-agnostic outbound messages the
// conversation core produces into LINE Messaging API objects.
package lineutil

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"rumorcheck-be/pkg/message"
)

// ToLineMessages converts a reply batch into its LINE wire representation.
// The reply API caps a batch at five messages; the core never produces more.
func ToLineMessages(msgs []message.Message) []messaging_api.MessageInterface {
	out := make([]messaging_api.MessageInterface, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toLineMessage(m))
	}
	return out
}

func toLineMessage(m message.Message) messaging_api.MessageInterface {
	switch v := m.(type) {
	case message.Text:
		return &messaging_api.TextMessage{Text: v.Text}

	case message.Confirm:
		return &messaging_api.TemplateMessage{
			AltText: v.AltText,
			Template: &messaging_api.ConfirmTemplate{
				Text: v.Text,
				Actions: []messaging_api.ActionInterface{
					toLineAction(v.Actions[0]),
					toLineAction(v.Actions[1]),
				},
			},
		}

	case message.Buttons:
		return &messaging_api.TemplateMessage{
			AltText: v.AltText,
			Template: &messaging_api.ButtonsTemplate{
				Title:   v.Title,
				Text:    v.Text,
				Actions: toLineActions(v.Actions),
			},
		}

	case message.Carousel:
		columns := make([]messaging_api.CarouselColumn, 0, len(v.Columns))
		for _, col := range v.Columns {
			columns = append(columns, messaging_api.CarouselColumn{
				Text:    col.Text,
				Actions: []messaging_api.ActionInterface{toLineAction(col.Action)},
			})
		}
		return &messaging_api.TemplateMessage{
			AltText:  v.AltText,
			Template: &messaging_api.CarouselTemplate{Columns: columns},
		}

	case message.Card:
		return &messaging_api.FlexMessage{
			AltText:  v.AltText,
			Contents: cardBubble(v),
		}

	default:
		// The message set is closed; a new variant must be wired here.
		return &messaging_api.TextMessage{Text: ""}
	}
}

func toLineActions(actions []message.Action) []messaging_api.ActionInterface {
	out := make([]messaging_api.ActionInterface, 0, len(actions))
	for _, a := range actions {
		out = append(out, toLineAction(a))
	}
	return out
}

func toLineAction(a message.Action) messaging_api.ActionInterface {
	if a.URI != "" {
		return &messaging_api.UriAction{Label: a.Label, Uri: a.URI}
	}
	return &messaging_api.PostbackAction{Label: a.Label, Data: a.Postback, DisplayText: a.Label}
}

func cardBubble(card message.Card) *messaging_api.FlexBubble {
	body := make([]messaging_api.FlexComponentInterface, 0, len(card.Body))
	for _, paragraph := range card.Body {
		body = append(body, &messaging_api.FlexText{
			Text: paragraph,
			Wrap: true,
			Size: "sm",
		})
	}

	return &messaging_api.FlexBubble{
		Header: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{
					Text:   card.Header,
					Wrap:   true,
					Weight: messaging_api.FlexTextWEIGHT_BOLD,
					Size:   "lg",
				},
			},
		},
		Body: &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Spacing:  "md",
			Contents: body,
		},
		Footer: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexButton{
					Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
					Action: toLineAction(card.Footer),
				},
			},
		},
	}
}
