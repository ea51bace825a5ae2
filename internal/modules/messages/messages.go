package messages

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/social"
	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)

type SendInput struct {
	SenderID uuid.UUID
	MatchID  uuid.UUID
	Content  string
}

type UnreadCount struct {
	UnreadCount int64 `json:"unread_count"`
}

// Send posts into a match the sender belongs to. The match does not need to
// be active.
func (u Usecases) Send(ctx context.Context, in SendInput) (*types.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apierr.BadRequest("invalid_content", "Message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > social.MaxMessageLength {
		return nil, apierr.BadRequest("invalid_content", fmt.Sprintf("Message content must be at most %d characters", social.MaxMessageLength))
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := u.loadMatchForMember(dbc, in.SenderID, in.MatchID); err != nil {
		return nil, err
	}
	msg := &types.Message{
		ID:        uuid.New(),
		MatchID:   in.MatchID,
		SenderID:  in.SenderID,
		Content:   content,
		CreatedAt: u.deps.Now().UTC(),
	}
	if _, err := u.deps.Messages.Create(dbc, []*types.Message{msg}); err != nil {
		return nil, apierr.Internal("send_message_failed", err)
	}
	if u.deps.OnSent != nil {
		u.deps.OnSent()
	}
	return msg, nil
}

func (u Usecases) ListForMatch(ctx context.Context, actorID, matchID uuid.UUID, skip, limit int) ([]*types.Message, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 || limit < 1 || limit > MaxListLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxListLimit))
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := u.loadMatchForMember(dbc, actorID, matchID); err != nil {
		return nil, err
	}
	rows, err := u.deps.Messages.ListByMatch(dbc, matchID, skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_messages_failed", err)
	}
	return rows, nil
}

// MarkRead is idempotent on an already-read message.
func (u Usecases) MarkRead(ctx context.Context, readerID, messageID uuid.UUID) (*types.Message, error) {
	dbc := dbctx.Context{Ctx: ctx}
	msg, err := u.deps.Messages.GetByID(dbc, messageID)
	if err != nil {
		return nil, apierr.Internal("load_message_failed", err)
	}
	if msg == nil {
		return nil, apierr.NotFound("message_not_found", "Message not found")
	}
	if _, err := u.loadMatchForMember(dbc, readerID, msg.MatchID); err != nil {
		return nil, err
	}
	if msg.SenderID == readerID {
		return nil, apierr.Detail(http.StatusBadRequest, "self_read", "You cannot mark your own message as read", pkgerrors.ErrSelfRead)
	}
	now := u.deps.Now().UTC()
	if err := u.deps.Messages.MarkRead(dbc, msg.ID, now); err != nil {
		return nil, apierr.Internal("mark_read_failed", err)
	}
	msg.Read = true
	msg.ReadAt = &now
	return msg, nil
}

func (u Usecases) UnreadCount(ctx context.Context, actorID uuid.UUID) (*UnreadCount, error) {
	n, err := u.deps.Messages.CountUnreadForUser(dbctx.Context{Ctx: ctx}, actorID)
	if err != nil {
		return nil, apierr.Internal("unread_count_failed", err)
	}
	return &UnreadCount{UnreadCount: n}, nil
}

func (u Usecases) loadMatchForMember(dbc dbctx.Context, actorID, matchID uuid.UUID) (*types.Match, error) {
	m, err := u.deps.Matches.GetByID(dbc, matchID)
	if err != nil {
		return nil, apierr.Internal("load_match_failed", err)
	}
	if m == nil {
		return nil, apierr.NotFound("match_not_found", "Match not found")
	}
	if !m.HasUser(actorID) {
		return nil, apierr.Forbidden("You are not part of this match")
	}
	return m, nil
}
