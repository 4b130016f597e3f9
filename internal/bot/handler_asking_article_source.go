package bot

import (
	"context"
	"fmt"

	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/message"
)

// handleAskingArticleSource reads where the user got the message from and
// routes into the matching follow-up flow.
func (b *Bot) handleAskingArticleSource(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	_ = ctx

	sources := sess.Data.ArticleSources
	if len(sources) == 0 {
		// The field belongs to whichever state put the menu up; reissue it
		// rather than strand a session restored without it.
		sources = ArticleSources
		sess.Data.ArticleSources = sources
	}

	n, ok := parseSelection(sess.Event.Input, len(sources))
	if !ok || n == 0 {
		sess.Replies = []message.Message{message.Text{
			Text: fmt.Sprintf("Please enter a number from 1 to %d to pick a source.", len(sources)),
		}}
		sess.State = StateAskingArticleSource
		return sess, nil, nil
	}

	source := sources[n-1]
	events := []analytics.Event{
		{Category: "Article", Action: "ProvidingSource", Label: source},
	}

	if source == sourceSelfEntered {
		// Text the user wrote themselves is not a forwarded rumor; hand them
		// to services with humans on the line instead.
		text := "Got it. For questions of your own, I suggest asking one of these professional fact-checking services — a real person will answer you!"
		actions := [2]message.Action{}
		for i, contact := range b.opts.VerificationContacts {
			if i >= len(actions) {
				break
			}
			actions[i] = message.URIAction(contact.Name, contact.URI)
		}
		sess.Replies = []message.Message{message.Confirm{AltText: text, Text: text, Actions: actions}}
		sess.State = StateInit
		return sess, events, nil
	}

	if len(sess.Data.FoundArticleIDs) > 0 && sess.Data.SelectedArticleID != "" {
		// The article already exists in the database; invite the user to file
		// their doubts against it instead of re-submitting.
		sess.Replies = []message.Message{message.Card{
			AltText: "[Tell the editors about your doubts]\n" +
				"Thank you. If you believe this is a rumor, press the button below and " +
				"tell the editors why, so they can address your doubts.",
			Header: "Tell the editors about your doubts",
			Body: []string{
				"Thank you. If you have doubts about this message, press \"🙋 I want to know too\" and share your thoughts with everyone.",
			},
			Footer: message.URIAction("🙋 I want to know too",
				message.DeepLink(b.opts.DeepLinkBaseURL, StateAskingReplyRequestReason.String(),
					sess.Data.SearchedText, ReasonPrefix, sess.Event.IssuedAt)),
		}}
		sess.State = StateAskingReplyRequestReason
		return sess, events, nil
	}

	// Brand-new article: invite submission of the message itself.
	sess.Replies = []message.Message{
		message.Text{Text: "Okay, thank you."},
		submissionInvite(b.opts.DeepLinkBaseURL, StateAskingArticleSubmissionReason,
			sess.Data.SearchedText, sess.Event.IssuedAt),
	}
	sess.State = StateAskingArticleSubmissionReason
	return sess, events, nil
}
