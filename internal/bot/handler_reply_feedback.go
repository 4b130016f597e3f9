package bot

import (
	"context"
	"fmt"
	"strings"

	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/knowledgebase"
	"rumorcheck-be/pkg/message"
	"rumorcheck-be/pkg/textutil"
)

// handleAskingReplyFeedback records the user's verdict on the reply they just
// read. A turn that is neither a "y" nor a prefixed downvote comment is
// incomplete: re-prompt, keep the state, emit nothing.
func (b *Bot) handleAskingReplyFeedback(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	if sess.Data.SelectedReplyID == "" {
		return sess, nil, &MissingSelectionError{Field: "selectedReplyId"}
	}

	voteLabel := sess.Data.SelectedArticleID + "/" + sess.Data.SelectedReplyID

	switch {
	case sess.Event.Input == "y":
		feedbackCount, err := b.kb.CreateOrUpdateArticleReplyFeedback(ctx,
			sess.UserID, sess.Data.SelectedArticleID, sess.Data.SelectedReplyID, knowledgebase.VoteUp, "")
		if err != nil {
			return sess, nil, err
		}

		reply, err := b.kb.GetReply(ctx, sess.Data.SelectedReplyID)
		if err != nil {
			return sess, nil, err
		}

		articleURL := message.ArticleURL(b.opts.SiteURL, sess.Data.SelectedArticleID)
		shared := fmt.Sprintf("Someone on the internet says「%s」%s!\n\nSee the replies, reasons and sources at %s",
			textutil.Ellipsis(sess.Data.SelectedArticleText, 15), textutil.TypeLabel(reply.Type), articleURL)

		sess.Replies = []message.Message{
			message.Text{Text: thankYouWords(feedbackCount)},
			message.Confirm{
				AltText: "📲 Don't forget to pass this reply back to the chat room you got the message from!\n" +
					"💁 If you think you can write a better reply, submit one at " + articleURL,
				Text: "📲 Don't forget to pass this reply back to the chat room you got the message from!\n" +
					"💁 If you think you can write a better reply, you're welcome to submit one!",
				Actions: [2]message.Action{
					message.URIAction("Share with friends", message.LineShareURI(shared)),
					message.URIAction("Submit a new reply", articleURL),
				},
			},
		}
		sess.State = StateInit
		events := []analytics.Event{
			{Category: "UserInput", Action: "Feedback-Vote", Label: voteLabel},
		}
		return sess, events, nil

	case strings.HasPrefix(sess.Event.Input, DownvotePrefix):
		comment := strings.TrimPrefix(sess.Event.Input, DownvotePrefix)
		feedbackCount, err := b.kb.CreateOrUpdateArticleReplyFeedback(ctx,
			sess.UserID, sess.Data.SelectedArticleID, sess.Data.SelectedReplyID, knowledgebase.VoteDown, comment)
		if err != nil {
			return sess, nil, err
		}

		sess.Replies = []message.Message{
			message.Text{Text: thankYouWords(feedbackCount)},
			message.Text{Text: "💁 If you think you can write a better reply, you're welcome to submit one at " +
				message.ArticleURL(b.opts.SiteURL, sess.Data.SelectedArticleID)},
		}
		sess.State = StateInit
		events := []analytics.Event{
			{Category: "UserInput", Action: "Feedback-Vote", Label: voteLabel},
		}
		return sess, events, nil

	default:
		// Incomplete turn: the user has not actually voted yet.
		sess.Replies = []message.Message{message.Text{
			Text: "Please press \"Yes\" or \"No\" above to rate the reply, or forward me another message to check.",
		}}
		return sess, nil, nil
	}
}

func thankYouWords(feedbackCount int) string {
	if feedbackCount > 1 {
		return fmt.Sprintf("Thanks for your feedback, together with %d other people.", feedbackCount-1)
	}
	return "Thanks for your feedback — you're the first to comment on this reply! :)"
}
