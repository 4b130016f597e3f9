// Package textutil holds the pure text helpers the conversation handlers
// lean on: grapheme-aware truncation, string similarity scoring, and the
// canned wording for reply classifications and feedback tallies.
package textutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/rivo/uniseg"
)

// DefaultEllipsis is appended to truncated text.
const DefaultEllipsis = "⋯⋯"

// nonsenseMinGraphemes is the minimum amount of content (counted in
// user-perceived characters, whitespace excluded) a message must carry to be
// worth searching the knowledge base for.
const nonsenseMinGraphemes = 20

// Ellipsis truncates text to limit graphemes, appending "⋯⋯" when truncation
// happens. See EllipsisWith.
func Ellipsis(text string, limit int) string {
	return EllipsisWith(text, limit, DefaultEllipsis)
}

// EllipsisWith truncates text so the result never exceeds limit graphemes.
// Text strictly shorter than limit is returned unchanged; otherwise the first
// limit-len(ellipsis) graphemes are kept and ellipsis is appended. The
// operation is idempotent.
func EllipsisWith(text string, limit int, ellipsis string) string {
	if uniseg.GraphemeClusterCount(text) < limit {
		return text
	}

	keep := limit - uniseg.GraphemeClusterCount(ellipsis)
	if keep < 0 {
		keep = 0
	}

	var b strings.Builder
	gr := uniseg.NewGraphemes(text)
	for i := 0; i < keep && gr.Next(); i++ {
		b.WriteString(gr.Str())
	}
	b.WriteString(ellipsis)
	return b.String()
}

// StripSpaces removes all whitespace so similarity scoring counts words only.
func StripSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

var diceMetric = metrics.NewSorensenDice()

// Similarity scores two strings in [0, 1] using the Sørensen–Dice coefficient
// over character bigrams. Identical strings score 1.
func Similarity(a, b string) float64 {
	return strutil.Similarity(a, b, diceMetric)
}

// IsNonsense reports whether text carries too little content to verify.
func IsNonsense(text string) bool {
	return uniseg.GraphemeClusterCount(StripSpaces(text)) < nonsenseMinGraphemes
}

// TypeLabel maps a reply classification to its user-facing label.
func TypeLabel(replyType string) string {
	switch replyType {
	case "RUMOR":
		return "❌ Contains misinformation"
	case "NOT_RUMOR":
		return "⭕ Contains true information"
	case "OPINIONATED":
		return "💬 Contains personal opinion"
	case "NOT_ARTICLE":
		return "⚠️ Not in the scope of verification"
	}
	return "The status of this reply is undefined"
}

// FeedbackWords renders the helpful/unhelpful vote tally shown with a reply.
func FeedbackWords(positive, negative int) string {
	if positive+negative == 0 {
		return "[No one has commented on this reply yet]"
	}
	var parts []string
	if positive > 0 {
		parts = append(parts, fmt.Sprintf("%d people found this reply helpful", positive))
	}
	if negative > 0 {
		parts = append(parts, fmt.Sprintf("%d people found this reply unhelpful", negative))
	}
	return "[" + strings.Join(parts, "\n") + "]"
}

// ReferenceWords renders the source line attached to a reply. Opinionated
// replies point at differing views rather than a source; a reply without any
// reference gets a caution instead.
func ReferenceWords(reference, replyType string) string {
	prompt := "Source"
	if replyType == "OPINIONATED" {
		prompt = "Different views"
	}
	if reference != "" {
		return prompt + ": " + reference
	}
	return fmt.Sprintf("⚠️ This reply has no %s. Please judge its credibility at your own discretion. ⚠️", strings.ToLower(prompt))
}
