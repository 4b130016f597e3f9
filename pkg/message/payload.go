package message

import (
	"encoding/json"
	"fmt"
	"net/url"

	"rumorcheck-be/pkg/textutil"
)

// PostbackPayload is the opaque data attached to a postback action so a later
// turn can recover which numbered option was chosen and when it was offered.
type PostbackPayload struct {
	Input    string `json:"input"`
	IssuedAt int64  `json:"issuedAt"`
}

// EncodePostback serializes a selection payload for a postback action.
func EncodePostback(input string, issuedAt int64) string {
	data, _ := json.Marshal(PostbackPayload{Input: input, IssuedAt: issuedAt})
	return string(data)
}

// DecodePostback parses a payload produced by EncodePostback.
func DecodePostback(data string) (PostbackPayload, error) {
	var p PostbackPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return PostbackPayload{}, fmt.Errorf("decode postback payload: %w", err)
	}
	return p, nil
}

// PostbackAction builds a labeled action carrying a numbered selection.
func PostbackAction(label, input string, issuedAt int64) Action {
	return Action{Label: label, Postback: EncodePostback(input, issuedAt)}
}

// URIAction builds a labeled action opening an external link.
func URIAction(label, uri string) Action {
	return Action{Label: label, URI: uri}
}

// DeepLink builds the out-of-band submission URL. The target page prefills
// the reason prefix and posts the result back into the conversation in the
// given state. Text is clipped to keep the URL short.
func DeepLink(base, state, text, prefix string, issuedAt int64) string {
	return fmt.Sprintf("%s?state=%s&text=%s&prefix=%s&issuedAt=%d",
		base,
		url.QueryEscape(state),
		url.QueryEscape(textutil.Ellipsis(text, 10)),
		url.QueryEscape(prefix),
		issuedAt,
	)
}

// ArticleURL is the public page for an article in the knowledge base.
func ArticleURL(siteURL, articleID string) string {
	return siteURL + "/article/" + articleID
}

// LineShareURI opens the platform share sheet prefilled with text.
func LineShareURI(text string) string {
	return "line://msg/text/?" + url.QueryEscape(text)
}

// FacebookShareURL opens the Facebook share dialog for an article page.
func FacebookShareURL(appID, quote, articleURL string) string {
	return fmt.Sprintf(
		"https://www.facebook.com/dialog/share?openExternalBrowser=1&app_id=%s&display=popup&quote=%s&hashtag=%s&href=%s",
		appID,
		url.QueryEscape(quote),
		url.QueryEscape("#RumorCheck"),
		url.QueryEscape(articleURL),
	)
}
