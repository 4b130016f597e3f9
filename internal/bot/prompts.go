package bot

import (
	"fmt"
	"strconv"
	"strings"

	"rumorcheck-be/pkg/message"
	"rumorcheck-be/pkg/textutil"
)

// Prefilled markers that identify deep-link submissions among ordinary
// messages. The out-of-band page prefills them; handlers strip them.
const (
	// ReasonPrefix marks a submitted reason for reporting an article.
	ReasonPrefix = "💁 My reason is:\n"
	// DownvotePrefix marks a comment explaining why a reply did not help.
	DownvotePrefix = "💡 This reply didn't help. It could be improved like this:\n"
)

// ArticleSources is the fixed menu of places a message may have come from.
// The last entry means the user wrote the text themselves.
var ArticleSources = []string{
	"Forwarded by relatives",
	"Forwarded by colleagues",
	"Forwarded by friends",
	"Entered it myself",
}

const sourceSelfEntered = "Entered it myself"

// parseSelection reads a 1-based menu selection. ok is false for anything
// that is not a number in [0, max]; 0 is the caller's "none of these".
func parseSelection(input string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 || n > max {
		return 0, false
	}
	return n, true
}

// sourceMenu builds the source-selection button menu shown whenever an
// article has no usable knowledge-base entry yet.
func sourceMenu(prompt string, sources []string, issuedAt int64) message.Buttons {
	var alt strings.Builder
	alt.WriteString(prompt + "\n\nWhere did you get this message from?\n\n")
	for i, source := range sources {
		fmt.Fprintf(&alt, "%s > send %d\n", source, i+1)
	}
	alt.WriteString("\nPlease type the option number.")

	actions := make([]message.Action, 0, len(sources))
	for i, source := range sources {
		actions = append(actions, message.PostbackAction(source, strconv.Itoa(i+1), issuedAt))
	}

	return message.Buttons{
		AltText: alt.String(),
		Text:    prompt + "\nWhere did you get this message from?",
		Actions: actions,
	}
}

// submissionInvite builds the rich card inviting the user to file the message
// (or their doubts about it) through the deep-link reason flow.
func submissionInvite(deepLinkBase string, target State, text string, issuedAt int64) message.Card {
	return message.Card{
		AltText: "[Send this message to the public database?]\n" +
			"If this is a forwarded message you suspect is a rumor, please file it " +
			"so volunteer editors can verify it and reply.\n\n" +
			"You won't get an answer right away, but you will help everyone who " +
			"receives the same message later.\n\n" +
			"📱 Please finish this step on your smartphone.",
		Header: "🥇 Be the first to report this message",
		Body: []string{
			"Nobody has filed this message yet. If it is a forwarded message you suspect is a rumor,",
			"press \"🆕 File it\" to send it to the public database and let volunteer editors verify it.",
			"You won't get an answer right away, but you will help everyone who receives the same message later.",
		},
		Footer: message.URIAction("🆕 File it",
			message.DeepLink(deepLinkBase, target.String(), text, ReasonPrefix, issuedAt)),
	}
}

// shareArticleReply builds the share prompt sent after an article has been
// filed, pointing friends at its public page.
func shareArticleReply(articleURL, reason, facebookAppID string) message.Buttons {
	shared := fmt.Sprintf(
		"I got this message and here is what I think:\n%s\n\nPlease help me check whether it is true: %s",
		textutil.Ellipsis(reason, 70), articleURL)

	return message.Buttons{
		AltText: "Asking around beats guessing. Share the message with friends — someone may know the answer!",
		Title:   "Asking around beats guessing",
		Text:    "Someone among your friends may have the answer.\nWho do you want to ask?",
		Actions: []message.Action{
			message.URIAction("Share on LINE", message.LineShareURI(shared)),
			message.URIAction("Share on Facebook",
				message.FacebookShareURL(facebookAppID, textutil.Ellipsis(reason, 80), articleURL)),
		},
	}
}
