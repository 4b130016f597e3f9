package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostbackRoundTrip(t *testing.T) {
	data := EncodePostback("3", 1700000000)
	p, err := DecodePostback(data)
	require.NoError(t, err)
	assert.Equal(t, "3", p.Input)
	assert.Equal(t, int64(1700000000), p.IssuedAt)
}

func TestDecodePostbackMalformed(t *testing.T) {
	_, err := DecodePostback("not json")
	assert.Error(t, err)
}

func TestDeepLink(t *testing.T) {
	got := DeepLink("https://liff.example.com/reason", "ASKING_ARTICLE_SUBMISSION_REASON", "這是一段待查證的長訊息內容", "💁 My reason is:\n", 1700000000)
	assert.Contains(t, got, "https://liff.example.com/reason?state=ASKING_ARTICLE_SUBMISSION_REASON")
	assert.Contains(t, got, "issuedAt=1700000000")
	// Text is clipped to 10 graphemes before escaping.
	assert.NotContains(t, got, "內容")
}

func TestArticleURL(t *testing.T) {
	assert.Equal(t, "https://rumorcheck.example.com/article/a1", ArticleURL("https://rumorcheck.example.com", "a1"))
}

func TestFacebookShareURL(t *testing.T) {
	got := FacebookShareURL("1234", "why I doubt this", "https://site/article/a1")
	assert.Contains(t, got, "app_id=1234")
	assert.Contains(t, got, "quote=why+I+doubt+this")
}
