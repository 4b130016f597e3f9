package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/knowledgebase"
	"rumorcheck-be/pkg/message"
	"rumorcheck-be/pkg/textutil"
)

// similarityThreshold is the whitespace-stripped similarity above which a
// candidate counts as near-identical to the user's text.
const similarityThreshold = 0.95

const searchLimit = 4

type scoredCandidate struct {
	knowledgebase.ArticleCandidate
	similarity float64
}

// handleInit starts a new verification thread: it searches the knowledge base
// for the user's text and routes by how well the candidates match.
func (b *Bot) handleInit(ctx context.Context, sess Session) (Session, []analytics.Event, error) {
	input := sess.Event.Input
	events := []analytics.Event{
		{Category: "UserInput", Action: "MessageType", Label: "text"},
	}

	sess.Data.SearchedText = input

	candidates, err := b.kb.ListArticles(ctx, input, searchLimit)
	if err != nil {
		return sess, nil, err
	}

	summary := textutil.Ellipsis(input, 12)

	if len(candidates) == 0 {
		if textutil.IsNonsense(input) {
			events = append(events, analytics.Event{Category: "UserInput", Action: "ArticleSearch", Label: "NonsenseText"})
			sess.Replies = []message.Message{message.Text{
				Text: "The message you sent is too short to verify.\n" +
					"Please forward the full message you want checked.",
			}}
			sess.State = StateInit
			return sess, events, nil
		}

		events = append(events, analytics.Event{Category: "UserInput", Action: "ArticleSearch", Label: "ArticleNotFound"})
		sess.Data.ArticleSources = ArticleSources
		sess.Replies = []message.Message{
			sourceMenu(fmt.Sprintf("I can't find anything about「%s」yet.", summary), sess.Data.ArticleSources, sess.Event.IssuedAt),
		}
		sess.State = StateAskingArticleSource
		return sess, events, nil
	}

	events = append(events, analytics.Event{Category: "UserInput", Action: "ArticleSearch", Label: "ArticleFound"})
	for _, c := range candidates {
		events = append(events, analytics.Event{Category: "Article", Action: "Search", Label: c.ID, NonInteractive: true})
	}

	// Score against the input with whitespace stripped so only the words
	// count, then rank by similarity. The sort is stable: ties keep the
	// backend's relevance order.
	strippedInput := textutil.StripSpaces(input)
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoredCandidate{
			ArticleCandidate: c,
			similarity:       textutil.Similarity(textutil.StripSpaces(c.Text), strippedInput),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].similarity > scored[j].similarity })

	ids := make([]string, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.ID)
	}
	sess.Data.FoundArticleIDs = ids

	hasIdenticalDocs := scored[0].similarity >= similarityThreshold

	if len(scored) == 1 && hasIdenticalDocs {
		// Choose for the user and fall straight through to article selection.
		sess.Event.Input = "1"
		sess.State = StateChoosingArticle
		sess.SkipUser = true
		return sess, events, nil
	}

	sess.Replies = []message.Message{
		message.Text{Text: fmt.Sprintf("Looking up replies about「%s」.", summary)},
		message.Text{Text: "Which of these is the message you just sent?"},
		candidateCarousel(scored, hasIdenticalDocs, sess.Event.IssuedAt),
	}
	sess.State = StateChoosingArticle
	return sess, events, nil
}

func candidateCarousel(scored []scoredCandidate, hasIdenticalDocs bool, issuedAt int64) message.Carousel {
	var altLines []string
	columns := make([]message.CarouselColumn, 0, len(scored)+1)

	for i, s := range scored {
		altLines = append(altLines, fmt.Sprintf("To choose, send %d> %s", i+1, textutil.EllipsisWith(s.Text, 20, "")))
		columns = append(columns, message.CarouselColumn{
			Text: fmt.Sprintf("[Similarity: %.2f%%]\n%s",
				s.similarity*100, textutil.EllipsisWith(s.Text, 100, "")),
			Action: message.PostbackAction("Choose this one", fmt.Sprintf("%d", i+1), issuedAt),
		})
	}

	if !hasIdenticalDocs {
		altLines = append(altLines, "If none of these match, send 0.")
		columns = append(columns, message.CarouselColumn{
			Text:   "None of these is the message I sent.",
			Action: message.PostbackAction("Choose this one", "0", issuedAt),
		})
	}

	return message.Carousel{
		AltText: strings.Join(altLines, "\n\n"),
		Columns: columns,
	}
}
