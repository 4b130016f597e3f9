package lineutil

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumorcheck-be/pkg/message"
)

func TestToLineMessages(t *testing.T) {
	msgs := []message.Message{
		message.Text{Text: "hello"},
		message.Confirm{
			AltText: "alt confirm",
			Text:    "Did this reply help you?",
			Actions: [2]message.Action{
				{Label: "Yes 👍", Postback: `{"input":"y","issuedAt":1}`},
				{Label: "No 🙏", URI: "https://liff.example.com/reason"},
			},
		},
		message.Buttons{
			AltText: "alt buttons",
			Text:    "Where did you get this message from?",
			Actions: []message.Action{
				{Label: "Forwarded by relatives", Postback: `{"input":"1","issuedAt":1}`},
			},
		},
		message.Carousel{
			AltText: "alt carousel",
			Columns: []message.CarouselColumn{
				{Text: "candidate one", Action: message.Action{Label: "Choose this one", Postback: `{"input":"1","issuedAt":1}`}},
				{Text: "candidate two", Action: message.Action{Label: "Choose this one", Postback: `{"input":"2","issuedAt":1}`}},
			},
		},
		message.Card{
			AltText: "alt card",
			Header:  "🥇 Be the first to report this message",
			Body:    []string{"first paragraph", "second paragraph"},
			Footer:  message.Action{Label: "🆕 File it", URI: "https://liff.example.com/reason?state=X"},
		},
	}

	out := ToLineMessages(msgs)
	require.Len(t, out, 5)

	text, ok := out[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "hello", text.Text)

	confirm, ok := out[1].(*messaging_api.TemplateMessage)
	require.True(t, ok)
	tmpl, ok := confirm.Template.(*messaging_api.ConfirmTemplate)
	require.True(t, ok)
	require.Len(t, tmpl.Actions, 2)
	postback, ok := tmpl.Actions[0].(*messaging_api.PostbackAction)
	require.True(t, ok)
	assert.Equal(t, `{"input":"y","issuedAt":1}`, postback.Data)
	uri, ok := tmpl.Actions[1].(*messaging_api.UriAction)
	require.True(t, ok)
	assert.Equal(t, "https://liff.example.com/reason", uri.Uri)

	buttons, ok := out[2].(*messaging_api.TemplateMessage)
	require.True(t, ok)
	_, ok = buttons.Template.(*messaging_api.ButtonsTemplate)
	assert.True(t, ok)

	carousel, ok := out[3].(*messaging_api.TemplateMessage)
	require.True(t, ok)
	ct, ok := carousel.Template.(*messaging_api.CarouselTemplate)
	require.True(t, ok)
	assert.Len(t, ct.Columns, 2)

	card, ok := out[4].(*messaging_api.FlexMessage)
	require.True(t, ok)
	bubble, ok := card.Contents.(*messaging_api.FlexBubble)
	require.True(t, ok)
	assert.Len(t, bubble.Body.Contents, 2)
	button, ok := bubble.Footer.Contents[0].(*messaging_api.FlexButton)
	require.True(t, ok)
	_, ok = button.Action.(*messaging_api.UriAction)
	assert.True(t, ok)
}
