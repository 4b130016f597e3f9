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

// replyCarouselLimit caps how many replies the carousel shows. Everything
// beyond it is still tracked in FoundReplyIDs and reachable via the article
// page link.
const replyCarouselLimit = 10

// handleChoosingArticle resolves the user's pick from the candidate list,
// loads the article's replies, and routes by what it finds.
func (b *Bot) handleChoosingArticle(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	if len(sess.Data.FoundArticleIDs) == 0 {
		return sess, nil, &MissingSelectionError{Field: "foundArticleIds"}
	}

	n, ok := parseSelection(sess.Event.Input, len(sess.Data.FoundArticleIDs))
	if !ok {
		sess.Replies = []message.Message{message.Text{
			Text: fmt.Sprintf("Please enter a number from 1 to %d to pick an article.", len(sess.Data.FoundArticleIDs)),
		}}
		sess.State = StateChoosingArticle
		return sess, nil, nil
	}

	if n == 0 {
		if textutil.IsNonsense(sess.Data.SearchedText) {
			sess.Replies = []message.Message{message.Text{
				Text: "The message you sent is too short for the editors to verify.\n" +
					"Please forward the full message you want checked.",
			}}
			sess.State = StateInit
			return sess, nil, nil
		}

		sess.Data.ArticleSources = ArticleSources
		sess.Replies = []message.Message{
			sourceMenu("Hmm, it seems your message is not in our database yet.", sess.Data.ArticleSources, sess.Event.IssuedAt),
		}
		sess.State = StateAskingArticleSource
		return sess, nil, nil
	}

	sess.Data.SelectedArticleID = sess.Data.FoundArticleIDs[n-1]

	article, err := b.kb.GetArticle(ctx, sess.Data.SelectedArticleID)
	if err != nil {
		return sess, nil, err
	}
	sess.Data.SelectedArticleText = article.Text

	events := []analytics.Event{
		{Category: "Article", Action: "Selected", Label: sess.Data.SelectedArticleID},
	}
	for _, ar := range article.ArticleReplies {
		events = append(events, analytics.Event{Category: "Reply", Action: "Search", Label: ar.Reply.ID, NonInteractive: true})
	}

	if len(article.ArticleReplies) == 0 {
		events = append(events, analytics.Event{Category: "Article", Action: "NoReply", Label: sess.Data.SelectedArticleID})
		sess.Data.ArticleSources = ArticleSources
		sess.Replies = []message.Message{
			sourceMenu("Sorry, nobody has replied to this message yet!", sess.Data.ArticleSources, sess.Event.IssuedAt),
		}
		sess.State = StateAskingArticleSource
		return sess, events, nil
	}

	replies := reorderArticleReplies(article.ArticleReplies)

	ids := make([]string, 0, len(replies))
	for _, ar := range replies {
		ids = append(ids, ar.Reply.ID)
	}
	sess.Data.FoundReplyIDs = ids

	sess.Replies = []message.Message{message.Text{Text: replySummary(article.ArticleReplies)}}
	sess.State = StateChoosingReply

	if len(replies) == 1 {
		// Choose for the user and fall straight through to reply viewing.
		sess.Event.Input = "1"
		sess.SkipUser = true
		return sess, events, nil
	}

	sess.Replies = append(sess.Replies, replyCarousel(replies, sess.Event.IssuedAt))
	if len(replies) > replyCarouselLimit {
		sess.Replies = append(sess.Replies, message.Text{
			Text: "For the rest of the replies, see: " + message.ArticleURL(b.opts.SiteURL, sess.Data.SelectedArticleID),
		})
	}
	return sess, events, nil
}

// reorderArticleReplies moves out-of-verification-scope replies to the end,
// keeping the backend order within each group.
func reorderArticleReplies(articleReplies []knowledgebase.ArticleReply) []knowledgebase.ArticleReply {
	inScope := make([]knowledgebase.ArticleReply, 0, len(articleReplies))
	var notArticle []knowledgebase.ArticleReply
	for _, ar := range articleReplies {
		if ar.Reply.Type == knowledgebase.TypeNotArticle {
			notArticle = append(notArticle, ar)
		} else {
			inScope = append(inScope, ar)
		}
	}
	return append(inScope, notArticle...)
}

func replySummary(articleReplies []knowledgebase.ArticleReply) string {
	count := map[string]int{}
	for _, ar := range articleReplies {
		count[ar.Reply.Type]++
	}
	return "This message has:\n" +
		fmt.Sprintf("%d replies marked ❌ contains misinformation\n", count[knowledgebase.TypeRumor]) +
		fmt.Sprintf("%d replies marked ⭕ contains true information\n", count[knowledgebase.TypeNotRumor]) +
		fmt.Sprintf("%d replies marked 💬 contains personal opinion\n", count[knowledgebase.TypeOpinionated]) +
		fmt.Sprintf("%d replies marked ⚠️ not in the scope of verification\n", count[knowledgebase.TypeNotArticle])
}

func replyCarousel(replies []knowledgebase.ArticleReply, issuedAt int64) message.Carousel {
	shown := replies
	if len(shown) > replyCarouselLimit {
		shown = shown[:replyCarouselLimit]
	}

	// The platform caps alt text, so each entry gets a fair share.
	eachLimit := 400/len(shown) - 5

	var altLines []string
	columns := make([]message.CarouselColumn, 0, len(shown))
	for i, ar := range shown {
		prefix := fmt.Sprintf("To read, send %d> %s\n%s",
			i+1, textutil.TypeLabel(ar.Reply.Type),
			textutil.FeedbackWords(ar.PositiveFeedbackCount, ar.NegativeFeedbackCount))
		content := textutil.EllipsisWith(ar.Reply.Text, eachLimit-len([]rune(prefix)), "")
		altLines = append(altLines, prefix+"\n"+content)

		columns = append(columns, message.CarouselColumn{
			Text: textutil.TypeLabel(ar.Reply.Type) + "\n" +
				textutil.FeedbackWords(ar.PositiveFeedbackCount, ar.NegativeFeedbackCount) + "\n" +
				textutil.EllipsisWith(ar.Reply.Text, 80, ""),
			Action: message.PostbackAction("Read this reply", fmt.Sprintf("%d", i+1), issuedAt),
		})
	}

	return message.Carousel{
		AltText: strings.Join(altLines, "\n\n"),
		Columns: columns,
	}
}
