package ports

// Notifier is the outbound mail boundary. EnqueueReset hands off a
// password-reset token for delivery and returns immediately; the core never
// blocks on, or verifies, delivery.
type Notifier interface {
	EnqueueReset(recipient, token string)
}
