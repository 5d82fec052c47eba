package server

import (
	"encoding/json"
	"errors"
)

// WebhookPayload is the subset of a WhatsApp Cloud API notification that is read
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one notification entry
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one field change inside an entry
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value carries inbound messages; status callbacks carry none
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Messages         []Message `json:"messages"`
}

// Message is one inbound message
type Message struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
}

// Text is the body of a text message
type Text struct {
	Body string `json:"body"`
}

// ParsePayload decodes a webhook body. A value of the wrong type anywhere in
// the document is skipped rather than rejecting the delivery, so a well formed
// first entry is still usable when later elements are junk.
func ParsePayload(body []byte) (*WebhookPayload, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}
	return &payload, nil
}

// FirstTextMessage returns entry[0].changes[0].value.messages[0] when it is a
// text message with a sender. Only the first message is considered.
func (p *WebhookPayload) FirstTextMessage() (*Message, bool) {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return nil, false
	}
	messages := p.Entry[0].Changes[0].Value.Messages
	if len(messages) == 0 {
		return nil, false
	}
	msg := &messages[0]
	if msg.From == "" || msg.Text == nil {
		return nil, false
	}
	return msg, true
}
