package service

import (
	"context"
	"time"

	"rumorcheck-be/internal/bot"
	"rumorcheck-be/internal/pkg/logger"
	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/message"
	"rumorcheck-be/pkg/store"
)

type IConversationService interface {
	// HandleTextMessage runs one turn for plain text the user typed or a
	// decoded postback selection.
	HandleTextMessage(ctx context.Context, userID, text string, issuedAt int64) ([]message.Message, error)
	// HandleFollow greets a user who just added or unblocked the bot.
	HandleFollow(ctx context.Context, userID string) ([]message.Message, error)
}

type conversationService struct {
	bot      *bot.Bot
	sessions store.SessionStore
	reporter analytics.IReporter
	logger   logger.ILogger
}

func NewConversationService(
	b *bot.Bot,
	sessions store.SessionStore,
	reporter analytics.IReporter,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		bot:      b,
		sessions: sessions,
		reporter: reporter,
		logger:   log,
	}
}

func (s *conversationService) HandleTextMessage(ctx context.Context, userID, text string, issuedAt int64) ([]message.Message, error) {
	sess := bot.NewSession(userID, bot.Event{Input: text, IssuedAt: issuedAt})

	record, found, err := s.sessions.Load(ctx, userID)
	if err != nil {
		// A broken session store must not silence the bot; fall back to a
		// fresh conversation and log the load failure.
		s.logger.Error("conversation", "failed to load session, starting fresh", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	} else if found {
		sess.State = record.State
		sess.Data = record.Data
	}

	final, events, err := s.bot.Dispatch(ctx, sess)
	if err != nil {
		// The dispatcher hands back the untouched input session, so nothing
		// is persisted for a failed turn.
		return nil, err
	}

	if err := s.sessions.Save(ctx, &store.SessionRecord{
		UserID: userID,
		State:  final.State,
		Data:   final.Data,
	}); err != nil {
		s.logger.Error("conversation", "failed to persist session", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}

	if len(events) > 0 {
		batch := analytics.Batch{
			UserID:     userID,
			State:      final.State.String(),
			Events:     events,
			OccurredAt: time.Now(),
		}
		if err := s.reporter.Report(ctx, batch); err != nil {
			s.logger.Warn("conversation", "failed to report analytics batch", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}

	return final.Replies, nil
}

func (s *conversationService) HandleFollow(ctx context.Context, userID string) ([]message.Message, error) {
	// A follow resets whatever conversation was in flight.
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Warn("conversation", "failed to reset session on follow", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}

	welcome := "Hi! Forward me any suspicious message and I'll look it up in the " +
		"crowd-sourced fact-checking database for you.\n\n" +
		"Replies are contributed by volunteer editors, so please always judge " +
		"them with your own discretion."
	return []message.Message{message.Text{Text: welcome}}, nil
}
