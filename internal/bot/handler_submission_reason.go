package bot

import (
	"context"
	"strings"

	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/message"
)

// handleAskingArticleSubmissionReason files the searched message as a new
// article once the deep-link flow delivers a prefixed reason.
func (b *Bot) handleAskingArticleSubmissionReason(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	if !strings.HasPrefix(sess.Event.Input, ReasonPrefix) {
		sess.Replies = []message.Message{message.Text{
			Text: "Please use the submission button above to file the current message, or forward me another message to check.",
		}}
		return sess, nil, nil
	}

	reason := strings.TrimPrefix(sess.Event.Input, ReasonPrefix)

	articleID, err := b.kb.CreateArticle(ctx, sess.UserID, sess.Data.SearchedText, reason)
	if err != nil {
		return sess, nil, err
	}

	events := []analytics.Event{
		{Category: "Article", Action: "Create", Label: "Yes"},
	}

	articleURL := message.ArticleURL(b.opts.SiteURL, articleID)
	sess.Replies = []message.Message{
		message.Text{Text: "The message you filed has been recorded at: " + articleURL},
		shareArticleReply(articleURL, reason, b.opts.FacebookAppID),
	}
	sess.State = StateInit
	return sess, events, nil
}

// handleAskingReplyRequestReason files the user's doubts against an article
// that already exists in the database.
func (b *Bot) handleAskingReplyRequestReason(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	if !strings.HasPrefix(sess.Event.Input, ReasonPrefix) {
		sess.Replies = []message.Message{message.Text{
			Text: "Please use the button above to tell the editors why you doubt this message, or forward me another message to check.",
		}}
		return sess, nil, nil
	}

	if sess.Data.SelectedArticleID == "" {
		return sess, nil, &MissingSelectionError{Field: "selectedArticleId"}
	}

	reason := strings.TrimPrefix(sess.Event.Input, ReasonPrefix)

	if err := b.kb.CreateReplyRequest(ctx, sess.UserID, sess.Data.SelectedArticleID, reason); err != nil {
		return sess, nil, err
	}

	events := []analytics.Event{
		{Category: "Article", Action: "ReplyRequest", Label: sess.Data.SelectedArticleID},
	}

	articleURL := message.ArticleURL(b.opts.SiteURL, sess.Data.SelectedArticleID)
	sess.Replies = []message.Message{
		message.Text{Text: "Thank you. Your doubts have been noted for the editors at: " + articleURL},
		shareArticleReply(articleURL, reason, b.opts.FacebookAppID),
	}
	sess.State = StateInit
	return sess, events, nil
}
