// Package domain holds DTOs for the communications http and service contracts
package domain

import (
	"fixqueue/internal/core/comms"
	"fixqueue/internal/core/repair"
)

// SendInput is one outbound message request. Content may carry {{var}}
// placeholders; they expand from the repair's fields before validation
type SendInput struct {
	Repair  repair.Order `json:"repair"`
	Channel string       `json:"channel" validate:"required,oneof=email sms whatsapp"`
	Content string       `json:"content" validate:"required"`
}

// SendOutput wraps the recorded message
type SendOutput struct {
	Message comms.Message `json:"message"`
}

// RemindInput is one reminder evaluation pass
type RemindInput struct {
	Rules     []comms.Rule     `json:"rules" validate:"required,min=1,dive"`
	Repairs   []repair.Order   `json:"repairs" validate:"required"`
	Templates []comms.Template `json:"templates" validate:"required,min=1,dive"`
}

// RemindOutput is the messages produced by one pass
type RemindOutput struct {
	Messages []comms.Message `json:"messages"`
}

// ListOutput is the full message log in append order
type ListOutput struct {
	Messages []comms.Message `json:"messages"`
}
