package domain

import "time"

const (
	DefaultTitle     = "Waste Management"
	DefaultChannelId = "waste_management_channel"
)

// Display is the optional alert block of an inbound message.
// Nil fields mean the transport did not send them.
type Display struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

type InboundMessage struct {
	Display *Display          `json:"display,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

type NotificationRequest struct {
	Title     string
	Body      string
	ChannelId string
}

// NewNotificationRequest builds a request for the default channel, filling absent fields.
func NewNotificationRequest(d Display) NotificationRequest {
	req := NotificationRequest{
		Title:     DefaultTitle,
		ChannelId: DefaultChannelId,
	}
	if d.Title != nil {
		req.Title = *d.Title
	}
	if d.Body != nil {
		req.Body = *d.Body
	}
	return req
}

type Priority uint8

const (
	PriorityDefault Priority = iota
	PriorityHigh
)

// LaunchAction is what happens when the user taps a notification.
type LaunchAction struct {
	Target   string `bson:"target"`
	ClearTop bool   `bson:"clearTop"`
}

type Notification struct {
	Icon       string       `bson:"icon"`
	Title      string       `bson:"title"`
	Body       string       `bson:"body"`
	ChannelId  string       `bson:"channelId"`
	AutoCancel bool         `bson:"autoCancel"`
	Priority   Priority     `bson:"priority"`
	Action     LaunchAction `bson:"action"`
	Posted     time.Time    `bson:"posted"`
}

// StringPtr is a helper for building Display values.
func StringPtr(s string) *string {
	return &s
}
