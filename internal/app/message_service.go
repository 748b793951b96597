package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/primary"
	"github.com/example/barter/internal/ports/secondary"
)

// MessageServiceConfig holds the tunables of the message service.
// Zero values fall back to the messaging package defaults.
type MessageServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxBodyLength   int
}

// MessageServiceImpl implements the MessageService interface.
type MessageServiceImpl struct {
	messageRepo secondary.MessageRepository
	users       secondary.UserDirectory
	offers      secondary.OfferDirectory
	metrics     secondary.MetricsRecorder
	logger      *zap.Logger
	cfg         MessageServiceConfig
}

// NewMessageService creates a new MessageService with injected dependencies.
// A nil metrics recorder or logger disables that concern.
func NewMessageService(
	messageRepo secondary.MessageRepository,
	users secondary.UserDirectory,
	offers secondary.OfferDirectory,
	metrics secondary.MetricsRecorder,
	logger *zap.Logger,
	cfg MessageServiceConfig,
) *MessageServiceImpl {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = messaging.MaxPageSize
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = messaging.DefaultPageSize
	}
	if cfg.MaxBodyLength <= 0 {
		cfg.MaxBodyLength = messaging.DefaultMaxBodyLength
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		users:       users,
		offers:      offers,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Send validates and appends a message.
func (s *MessageServiceImpl) Send(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
	guard := messaging.CanSend(messaging.SendContext{
		SenderID:      req.SenderID,
		RecipientID:   req.RecipientID,
		Body:          req.Text,
		MaxBodyLength: s.cfg.MaxBodyLength,
	})
	if err := guard.Error(); err != nil {
		s.metrics.SendRejected("validation")
		return nil, err
	}

	exists, err := s.users.Exists(ctx, req.RecipientID)
	if err != nil {
		s.metrics.SendRejected("store")
		return nil, s.storeFailed("check recipient", err)
	}
	if !exists {
		s.metrics.SendRejected("recipient_not_found")
		return nil, &messaging.NotFoundError{Entity: "user", ID: req.RecipientID}
	}

	offerID, err := s.resolveOffer(ctx, req.OfferID)
	if err != nil {
		s.metrics.SendRejected("store")
		return nil, s.storeFailed("check offer", err)
	}

	record := &secondary.MessageRecord{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		OfferID:     offerID,
		Body:        messaging.NormalizeBody(req.Text),
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		s.metrics.SendRejected("store")
		return nil, s.storeFailed("append message", err)
	}

	s.metrics.MessageSent(offerID > 0)
	s.logger.Debug("message sent",
		zap.Int64("message_id", record.ID),
		zap.Int64("sender_id", record.SenderID),
		zap.Int64("recipient_id", record.RecipientID),
		zap.Int64("offer_id", offerID),
	)

	return s.toMessages(ctx, []*secondary.MessageRecord{record})[0], nil
}

// resolveOffer returns the offer to store with a message, or 0 when the
// reference is absent, unknown or no longer listed.
func (s *MessageServiceImpl) resolveOffer(ctx context.Context, offerID *int64) (int64, error) {
	if offerID == nil || *offerID <= 0 {
		return 0, nil
	}

	active, err := s.offers.IsActive(ctx, *offerID)
	if err != nil {
		return 0, err
	}
	if !active {
		s.logger.Debug("dropping stale offer reference", zap.Int64("offer_id", *offerID))
		return 0, nil
	}
	return *offerID, nil
}

// History returns one page of a conversation without side effects.
func (s *MessageServiceImpl) History(ctx context.Context, req primary.HistoryRequest) ([]*primary.Message, error) {
	records, _, err := s.page(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.toMessages(ctx, records), nil
}

// ViewConversation returns one page as seen by req.UserA and marks the
// returned messages addressed to UserA as read. Messages are returned as they
// were before marking; MarkedRead reports how many flipped.
func (s *MessageServiceImpl) ViewConversation(ctx context.Context, req primary.HistoryRequest) (*primary.ConversationPage, error) {
	records, pageSize, err := s.page(ctx, req)
	if err != nil {
		return nil, err
	}

	total, err := s.messageRepo.CountConversation(ctx, messaging.NewPair(req.UserA, req.UserB))
	if err != nil {
		return nil, s.storeFailed("count conversation", err)
	}

	marked, err := s.markIncoming(ctx, records, req.UserA)
	if err != nil {
		return nil, err
	}

	return &primary.ConversationPage{
		Messages:   s.toMessages(ctx, records),
		Page:       req.Page,
		PageSize:   pageSize,
		Total:      total,
		MarkedRead: marked,
	}, nil
}

// page validates a history request and loads the addressed window.
func (s *MessageServiceImpl) page(ctx context.Context, req primary.HistoryRequest) ([]*secondary.MessageRecord, int, error) {
	if err := messaging.CanReadConversation(req.UserA, req.UserB).Error(); err != nil {
		return nil, 0, err
	}
	guard := messaging.CheckPage(messaging.PageContext{
		Page:        req.Page,
		PageSize:    req.PageSize,
		MaxPageSize: s.cfg.MaxPageSize,
	})
	if err := guard.Error(); err != nil {
		return nil, 0, err
	}

	pageSize := messaging.ResolvePageSize(req.PageSize, s.cfg.DefaultPageSize)
	records, err := s.messageRepo.ListConversation(ctx,
		messaging.NewPair(req.UserA, req.UserB),
		pageSize,
		messaging.Offset(req.Page, pageSize),
	)
	if err != nil {
		return nil, 0, s.storeFailed("load history", err)
	}
	return records, pageSize, nil
}

// MessagesSince returns the conversation tail past afterID without side effects.
func (s *MessageServiceImpl) MessagesSince(ctx context.Context, userA, userB, afterID int64) ([]*primary.Message, error) {
	records, err := s.since(ctx, userA, userB, afterID)
	if err != nil {
		return nil, err
	}
	return s.toMessages(ctx, records), nil
}

// PollConversation returns the conversation tail past afterID for viewerID
// and marks the returned incoming messages as read.
func (s *MessageServiceImpl) PollConversation(ctx context.Context, viewerID, partnerID, afterID int64) ([]*primary.Message, error) {
	records, err := s.since(ctx, viewerID, partnerID, afterID)
	if err != nil {
		return nil, err
	}
	if _, err := s.markIncoming(ctx, records, viewerID); err != nil {
		return nil, err
	}
	return s.toMessages(ctx, records), nil
}

func (s *MessageServiceImpl) since(ctx context.Context, userA, userB, afterID int64) ([]*secondary.MessageRecord, error) {
	if err := messaging.CanReadConversation(userA, userB).Error(); err != nil {
		return nil, err
	}
	if afterID < 0 {
		return nil, &messaging.ValidationError{Field: "after", Reason: "cursor cannot be negative"}
	}

	records, err := s.messageRepo.ListConversationAfter(ctx, messaging.NewPair(userA, userB), afterID)
	if err != nil {
		return nil, s.storeFailed("load new messages", err)
	}
	return records, nil
}

// ConversationSize returns the number of messages between two users.
func (s *MessageServiceImpl) ConversationSize(ctx context.Context, userA, userB int64) (int, error) {
	if err := messaging.CanReadConversation(userA, userB).Error(); err != nil {
		return 0, err
	}

	count, err := s.messageRepo.CountConversation(ctx, messaging.NewPair(userA, userB))
	if err != nil {
		return 0, s.storeFailed("count conversation", err)
	}
	return count, nil
}

// MarkRead marks the given messages addressed to recipientID as read.
func (s *MessageServiceImpl) MarkRead(ctx context.Context, messageIDs []int64, recipientID int64) (int, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	if recipientID <= 0 {
		return 0, &messaging.ValidationError{Field: "recipient", Reason: "user id must be positive"}
	}

	changed, err := s.messageRepo.MarkRead(ctx, messageIDs, recipientID)
	if err != nil {
		return 0, s.storeFailed("mark read", err)
	}
	s.metrics.MessagesRead(changed)
	return changed, nil
}

// markIncoming marks the unread records addressed to viewerID.
func (s *MessageServiceImpl) markIncoming(ctx context.Context, records []*secondary.MessageRecord, viewerID int64) (int, error) {
	var ids []int64
	for _, r := range records {
		if r.RecipientID == viewerID && !r.Read {
			ids = append(ids, r.ID)
		}
	}
	return s.MarkRead(ctx, ids, viewerID)
}

// ListDialogs returns the user's conversations, most recently active first.
// The partner enumeration is cross-checked against the latest messages so that a
// conversation cleared between the two reads is dropped and logged.
func (s *MessageServiceImpl) ListDialogs(ctx context.Context, userID int64) ([]*primary.DialogSummary, error) {
	if userID <= 0 {
		return []*primary.DialogSummary{}, nil
	}

	partners, err := s.messageRepo.ListPartners(ctx, userID)
	if err != nil {
		return nil, s.storeFailed("list partners", err)
	}

	latestRecords, err := s.messageRepo.LatestPerPartner(ctx, userID)
	if err != nil {
		return nil, s.storeFailed("load latest messages", err)
	}
	latest := make(map[int64]messaging.LatestMessage, len(latestRecords))
	byID := make(map[int64]*secondary.MessageRecord, len(latestRecords))
	for _, r := range latestRecords {
		partner, ok := r.Pair().Partner(userID)
		if !ok {
			continue
		}
		latest[partner] = messaging.LatestMessage{MessageID: r.ID, SenderID: r.SenderID, CreatedAt: r.CreatedAt}
		byID[r.ID] = r
	}

	unread, err := s.messageRepo.UnreadBySender(ctx, userID)
	if err != nil {
		return nil, s.storeFailed("count unread", err)
	}

	if vanished := messaging.VanishedPartners(userID, partners, latest); len(vanished) > 0 {
		s.logger.Debug("conversations cleared during dialog listing",
			zap.Int64("user_id", userID),
			zap.Int64s("partners", vanished),
		)
	}

	dialogs := messaging.AssembleDialogs(userID, partners, latest, unread)

	lastRecords := make([]*secondary.MessageRecord, len(dialogs))
	for i, d := range dialogs {
		lastRecords[i] = byID[d.Latest.MessageID]
	}
	lastMessages := s.toMessages(ctx, lastRecords)

	summaries := make([]*primary.DialogSummary, 0, len(dialogs))
	for i, d := range dialogs {
		partner, err := s.partner(ctx, d.PartnerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &primary.DialogSummary{
			Partner:     partner,
			LastMessage: lastMessages[i],
			IsMine:      d.IsMine,
			UnreadCount: d.UnreadCount,
		})
	}
	return summaries, nil
}

// partner decorates a partner ID with directory display info.
func (s *MessageServiceImpl) partner(ctx context.Context, partnerID int64) (primary.Partner, error) {
	info, err := s.users.GetDisplayInfo(ctx, partnerID)
	if err != nil {
		return primary.Partner{}, s.storeFailed("load partner", err)
	}
	if info == nil {
		return primary.Partner{ID: partnerID}, nil
	}
	return primary.Partner{
		ID:        partnerID,
		Username:  info.Username,
		AvatarRef: info.AvatarRef,
		FullName:  info.FullName,
		Known:     true,
	}, nil
}

// UnreadCount returns the user's unread badge count. Unknown or anonymous
// users get 0 rather than an error.
func (s *MessageServiceImpl) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if userID <= 0 {
		return 0, nil
	}

	count, err := s.messageRepo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, s.storeFailed("count unread", err)
	}
	return count, nil
}

// DeleteMessage deletes a message on behalf of its sender.
func (s *MessageServiceImpl) DeleteMessage(ctx context.Context, messageID, requesterID int64) (bool, error) {
	record, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if messaging.IsNotFound(err) {
			return false, err
		}
		return false, s.storeFailed("load message", err)
	}

	guard := messaging.CanDeleteMessage(messaging.DeleteContext{
		MessageID:   messageID,
		SenderID:    record.SenderID,
		RequesterID: requesterID,
	})
	if err := guard.Error(); err != nil {
		return false, err
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		if messaging.IsNotFound(err) {
			return false, err
		}
		return false, s.storeFailed("delete message", err)
	}

	s.metrics.MessageDeleted()
	s.logger.Debug("message deleted", zap.Int64("message_id", messageID), zap.Int64("requester_id", requesterID))
	return true, nil
}

// ClearConversation erases a conversation on behalf of one of its participants.
func (s *MessageServiceImpl) ClearConversation(ctx context.Context, req primary.ClearConversationRequest) (int, error) {
	guard := messaging.CanClearConversation(messaging.ClearContext{
		UserA:       req.UserA,
		UserB:       req.UserB,
		RequesterID: req.RequesterID,
	})
	if err := guard.Error(); err != nil {
		return 0, err
	}

	removed, err := s.messageRepo.DeleteConversation(ctx, messaging.NewPair(req.UserA, req.UserB))
	if err != nil {
		return 0, s.storeFailed("clear conversation", err)
	}

	s.metrics.ConversationCleared(removed)
	s.logger.Debug("conversation cleared",
		zap.Int64("user_a", req.UserA),
		zap.Int64("user_b", req.UserB),
		zap.Int64("requester_id", req.RequesterID),
		zap.Int("removed", removed),
	)
	return removed, nil
}

// storeFailed records and logs a failed store call and returns err unchanged.
func (s *MessageServiceImpl) storeFailed(op string, err error) error {
	s.metrics.StoreFailure(op)
	s.logger.Warn("store operation failed", zap.String("op", op), zap.Error(err))
	return err
}

// toMessages converts records, resolving each distinct offer title once.
func (s *MessageServiceImpl) toMessages(ctx context.Context, records []*secondary.MessageRecord) []*primary.Message {
	titles := make(map[int64]string)
	messages := make([]*primary.Message, len(records))
	for i, r := range records {
		msg := &primary.Message{
			ID:          r.ID,
			SenderID:    r.SenderID,
			RecipientID: r.RecipientID,
			Text:        r.Body,
			Read:        r.Read,
			CreatedAt:   r.CreatedAt,
		}
		if r.OfferID > 0 {
			offerID := r.OfferID
			msg.OfferID = &offerID
			title, cached := titles[offerID]
			if !cached {
				title = s.offerTitle(ctx, offerID)
				titles[offerID] = title
			}
			msg.OfferTitle = title
		}
		messages[i] = msg
	}
	return messages
}

// offerTitle looks up an offer title. A failed lookup only costs the title.
func (s *MessageServiceImpl) offerTitle(ctx context.Context, offerID int64) string {
	title, ok, err := s.offers.GetTitle(ctx, offerID)
	if err != nil {
		s.logger.Debug("offer title lookup failed", zap.Int64("offer_id", offerID), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return title
}

type noopMetrics struct{}

func (noopMetrics) MessageSent(bool) {}
func (noopMetrics) SendRejected(string) {}
func (noopMetrics) MessagesRead(int) {}
func (noopMetrics) MessageDeleted() {}
func (noopMetrics) ConversationCleared(int) {}
func (noopMetrics) StoreFailure(string) {}

// Ensure MessageServiceImpl implements the interface.
var _ primary.MessageService = (*MessageServiceImpl)(nil)
