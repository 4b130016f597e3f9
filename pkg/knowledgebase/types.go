package knowledgebase

// Reply classification values reported by the knowledge base.
const (
	TypeRumor       = "RUMOR"
	TypeNotRumor    = "NOT_RUMOR"
	TypeOpinionated = "OPINIONATED"
	TypeNotArticle  = "NOT_ARTICLE"
)

// Feedback votes.
const (
	VoteUp   = "UPVOTE"
	VoteDown = "DOWNVOTE"
)

// ArticleCandidate is one search hit, in backend relevance order.
type ArticleCandidate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Reply is a community reply to an article.
type Reply struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// ArticleReply pairs a reply with its feedback tallies on a given article.
type ArticleReply struct {
	Reply                 Reply `json:"reply"`
	PositiveFeedbackCount int   `json:"positiveFeedbackCount"`
	NegativeFeedbackCount int   `json:"negativeFeedbackCount"`
}

// Article is the full detail of one knowledge-base entry, with its
// non-retracted replies.
type Article struct {
	Text           string         `json:"text"`
	ReplyCount     int            `json:"replyCount"`
	ArticleReplies []ArticleReply `json:"articleReplies"`
}
