package dto

import messagingdomain "recruitbridge-backend/internal/messaging/domain"

// InboundWebhookRequest is the form-encoded payload Mailgun posts for a
// routed inbound message. Timestamp, token and signature are only present
// when webhook signing is enabled.
type InboundWebhookRequest struct {
	Sender    string `form:"sender" binding:"required"`
	Recipient string `form:"recipient" binding:"required"`
	Subject   string `form:"subject"`
	BodyPlain string `form:"body-plain"`
	BodyHTML  string `form:"body-html"`
	MessageID string `form:"Message-Id" binding:"required"`
	Timestamp string `form:"timestamp"`
	Token     string `form:"token"`
	Signature string `form:"signature"`
}

type SendMessageRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type SendMessageResponse struct {
	OK        bool   `json:"ok"`
	MessageID string `json:"messageId,omitempty"`
	From      string `json:"from,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

type ThreadsResponse struct {
	Threads []*messagingdomain.Thread `json:"threads"`
}

type MessagesResponse struct {
	Messages []*messagingdomain.Message `json:"messages"`
}
