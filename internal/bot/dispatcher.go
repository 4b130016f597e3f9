package bot

import (
	"context"

	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/knowledgebase"
)

// maxAutoAdvance caps auto-advance chaining. The conversation's natural depth
// is two hops (search→article, article→reply); anything past five is a cycle.
const maxAutoAdvance = 5

// Contact is an external verification service users get redirected to when
// they authored the message themselves.
type Contact struct {
	Name string
	URI  string
}

// Options is the environment surface the handlers compose links from.
type Options struct {
	// SiteURL is the base URL of the public article pages.
	SiteURL string
	// DeepLinkBaseURL is the base URL of the out-of-band submission page.
	DeepLinkBaseURL string
	// FacebookAppID feeds the Facebook share dialog.
	FacebookAppID string
	// VerificationContacts are the services suggested for self-entered text.
	VerificationContacts []Contact
}

// Bot holds the dependencies shared by all state handlers.
type Bot struct {
	kb   knowledgebase.Client
	opts Options
}

// New builds the conversation core around a knowledge-base client.
func New(kb knowledgebase.Client, opts Options) *Bot {
	return &Bot{kb: kb, opts: opts}
}

// Dispatch runs one conversation turn: it invokes the handler for the
// session's state and, while the produced session requests auto-advance,
// keeps re-dispatching with the same event. On error the input session is
// returned unchanged so the caller commits nothing.
func (b *Bot) Dispatch(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	orig := sess
	var collected []analytics.Event

	for i := 0; i < maxAutoAdvance; i++ {
		next, events, err := b.step(ctx, sess)
		if err != nil {
			// Even mid-chain, the caller gets the session it passed in.
			return orig, nil, err
		}
		collected = append(collected, events...)

		if !next.SkipUser {
			return next, collected, nil
		}
		next.SkipUser = false
		sess = next
	}

	return orig, nil, &AutoAdvanceLoopError{Limit: maxAutoAdvance}
}

// step invokes exactly one handler. The switch is exhaustive over the closed
// state set; anything else is a corrupted session.
func (b *Bot) step(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	switch sess.State {
	case StateInit:
		return b.handleInit(ctx, sess)
	case StateChoosingArticle:
		return b.handleChoosingArticle(ctx, sess)
	case StateAskingArticleSource:
		return b.handleAskingArticleSource(ctx, sess)
	case StateAskingArticleSubmissionReason:
		return b.handleAskingArticleSubmissionReason(ctx, sess)
	case StateChoosingReply:
		return b.handleChoosingReply(ctx, sess)
	case StateAskingReplyRequestReason:
		return b.handleAskingReplyRequestReason(ctx, sess)
	case StateAskingReplyFeedback:
		return b.handleAskingReplyFeedback(ctx, sess)
	default:
		return sess, nil, &UnknownStateError{State: sess.State}
	}
}
