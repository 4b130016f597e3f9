package textutil

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
)

func TestEllipsis(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "shorter than limit unchanged",
			text:  "hello",
			limit: 10,
			want:  "hello",
		},
		{
			name:  "exactly at limit is truncated",
			text:  "abcde",
			limit: 5,
			want:  "abc⋯⋯",
		},
		{
			name:  "long ascii",
			text:  "abcdefghij",
			limit: 6,
			want:  "abcd⋯⋯",
		},
		{
			name:  "cjk counted per character",
			text:  "謠言查證訊息測試",
			limit: 5,
			want:  "謠言查⋯⋯",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ellipsis(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, uniseg.GraphemeClusterCount(got), tt.limit)
		})
	}
}

func TestEllipsisIdempotent(t *testing.T) {
	for _, text := range []string{
		"short",
		strings.Repeat("long text ", 30),
		"這是一個比較長的中文測試訊息，用來驗證截斷行為",
		"emoji 👨‍👩‍👧‍👦👨‍👩‍👧‍👦👨‍👩‍👧‍👦 family sequences count as one",
	} {
		once := Ellipsis(text, 12)
		twice := Ellipsis(once, 12)
		assert.Equal(t, once, twice, "ellipsis must be idempotent for %q", text)
	}
}

func TestEllipsisEmojiGraphemes(t *testing.T) {
	// A family emoji is many runes but one user-perceived character.
	text := "👨‍👩‍👧‍👦👨‍👩‍👧‍👦👨‍👩‍👧‍👦"
	assert.Equal(t, text, Ellipsis(text, 4))
	got := Ellipsis(text, 3)
	assert.Equal(t, "👨‍👩‍👧‍👦⋯⋯", got)
}

func TestEllipsisWithEmptySuffix(t *testing.T) {
	assert.Equal(t, "abcde", EllipsisWith("abcdefgh", 5, ""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("測試訊息", "測試訊息"), 1e-9)
	assert.InDelta(t, 1.0, Similarity(StripSpaces("測試 訊息"), StripSpaces("測試訊息")), 1e-9)
	assert.Less(t, Similarity("測試訊息", "完全無關的字串"), 0.5)
}

func TestStripSpaces(t *testing.T) {
	assert.Equal(t, "abc", StripSpaces(" a b\tc\n"))
	assert.Equal(t, "測試訊息", StripSpaces("測試　訊息")) // full-width space
}

func TestIsNonsense(t *testing.T) {
	assert.True(t, IsNonsense("hi"))
	assert.True(t, IsNonsense("短訊息"))
	assert.False(t, IsNonsense(strings.Repeat("這是一段夠長的轉傳訊息", 3)))
	assert.False(t, IsNonsense("this forwarded message is long enough to verify"))
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		replyType string
		want      string
	}{
		{"RUMOR", "❌ Contains misinformation"},
		{"NOT_RUMOR", "⭕ Contains true information"},
		{"OPINIONATED", "💬 Contains personal opinion"},
		{"NOT_ARTICLE", "⚠️ Not in the scope of verification"},
		{"BOGUS", "The status of this reply is undefined"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeLabel(tt.replyType))
	}
}

func TestFeedbackWords(t *testing.T) {
	assert.Equal(t, "[No one has commented on this reply yet]", FeedbackWords(0, 0))
	assert.Equal(t, "[3 people found this reply helpful]", FeedbackWords(3, 0))
	assert.Equal(t, "[1 people found this reply helpful\n2 people found this reply unhelpful]", FeedbackWords(1, 2))
}

func TestReferenceWords(t *testing.T) {
	assert.Equal(t, "Source: https://example.com", ReferenceWords("https://example.com", "RUMOR"))
	assert.Equal(t, "Different views: blog post", ReferenceWords("blog post", "OPINIONATED"))
	assert.Contains(t, ReferenceWords("", "RUMOR"), "no source")
	assert.Contains(t, ReferenceWords("", "OPINIONATED"), "no different views")
}
