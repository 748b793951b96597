package secondary

// MetricsRecorder receives operational counters from the message service.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	MessageSent(withOffer bool)
	SendRejected(reason string)
	MessagesRead(count int)
	MessageDeleted()
	ConversationCleared(removed int)
	StoreFailure(op string)
}
