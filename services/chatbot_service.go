package services

import (
	"context"
	"log"

	"medilink-backend/matcher"
	"medilink-backend/models"
)

// ReplyBuilder produces a local reply for a message.
type ReplyBuilder interface {
	BuildReply(ctx context.Context, message string) (*matcher.Reply, error)
}

type ChatbotService struct {
	replies  ReplyBuilder
	upstream *UpstreamService
}

func NewChatbotService(replies ReplyBuilder, upstream *UpstreamService) *ChatbotService {
	return &ChatbotService{
		replies:  replies,
		upstream: upstream,
	}
}

// ProcessMessage answers a chat message, through the upstream assistant when
// one is configured and with the local doctor matcher otherwise.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if req.Message == "" {
		return nil, ErrMissingMessage
	}

	if s.upstream.Enabled() {
		return s.upstream.GenerateReply(ctx, req.Message)
	}

	reply, err := s.replies.BuildReply(ctx, req.Message)
	if err != nil {
		log.Printf("Failed to build reply for session %q: %v", req.SessionID, err)
		return nil, err
	}

	return models.NewLocalResponse(reply.Text, reply.Suggestions), nil
}

// UsesUpstream reports whether replies are proxied
func (s *ChatbotService) UsesUpstream() bool {
	return s.upstream.Enabled()
}
