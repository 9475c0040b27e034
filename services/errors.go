package services

import "errors"

var (
	// ErrMissingMessage is returned when a chat request carries no text.
	ErrMissingMessage = errors.New("missing message")

	// ErrUpstreamFailed wraps failures of the upstream assistant.
	ErrUpstreamFailed = errors.New("upstream assistant failed")

	// ErrWhatsAppDisabled is returned when sending without WhatsApp credentials.
	ErrWhatsAppDisabled = errors.New("whatsapp is not configured")
)
