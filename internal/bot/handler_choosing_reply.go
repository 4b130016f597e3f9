package bot

import (
	"context"
	"fmt"

	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/message"
	"rumorcheck-be/pkg/textutil"
)

// handleChoosingReply resolves the user's pick from the reply list, shows the
// full reply with its classification and source, and asks for feedback.
func (b *Bot) handleChoosingReply(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	if len(sess.Data.FoundReplyIDs) == 0 {
		return sess, nil, &MissingSelectionError{Field: "foundReplyIds"}
	}

	n, ok := parseSelection(sess.Event.Input, len(sess.Data.FoundReplyIDs))
	if !ok || n == 0 {
		sess.Replies = []message.Message{message.Text{
			Text: fmt.Sprintf("Please enter a number from 1 to %d to pick a reply.", len(sess.Data.FoundReplyIDs)),
		}}
		sess.State = StateChoosingReply
		return sess, nil, nil
	}

	sess.Data.SelectedReplyID = sess.Data.FoundReplyIDs[n-1]

	reply, err := b.kb.GetReply(ctx, sess.Data.SelectedReplyID)
	if err != nil {
		return sess, nil, err
	}

	events := []analytics.Event{
		{Category: "Reply", Action: "Selected", Label: sess.Data.SelectedReplyID},
	}

	feedbackPrompt := "Did this reply help you?"
	sess.Replies = []message.Message{
		message.Text{Text: "Volunteer editors say this message\n" + textutil.TypeLabel(reply.Type) + "\n\n" + reply.Text},
		message.Text{Text: textutil.ReferenceWords(reply.Reference, reply.Type)},
		message.Confirm{
			AltText: feedbackPrompt + " Please answer \"y\" for yes, or tell me how the reply could improve.",
			Text:    feedbackPrompt,
			Actions: [2]message.Action{
				message.PostbackAction("Yes 👍", "y", sess.Event.IssuedAt),
				message.URIAction("No 🙏", message.DeepLink(
					b.opts.DeepLinkBaseURL, StateAskingReplyFeedback.String(),
					sess.Data.SelectedArticleText, DownvotePrefix, sess.Event.IssuedAt)),
			},
		},
	}
	sess.State = StateAskingReplyFeedback
	return sess, events, nil
}
