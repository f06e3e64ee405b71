package model

import (
	"sort"
	"time"
)

// MessageType enumerates the kinds of persisted messages
type MessageType string

const (
	MessageTypeStatus         MessageType = "status"
	MessageTypeMessage        MessageType = "message"
	MessageTypePrivateMessage MessageType = "private_message"
)

const (
	// Broadcast is the recipient meaning every participant
	Broadcast = "Todos"

	// JoinText is the text of the status message emitted on registration
	JoinText = "entra na sala..."

	// TimeLayout formats message times as HH:mm:ss
	TimeLayout = "15:04:05"
)

// Message is an immutable chat entry
type Message struct {
	From string      `json:"from" bson:"from"`
	To   string      `json:"to" bson:"to"`
	Text string      `json:"text" bson:"text"`
	Type MessageType `json:"type" bson:"type"`
	Time string      `json:"time" bson:"time"`
}

// FormatTime renders t the way message times are stored
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// NewJoinMessage creates the status message announcing that name entered the room
func NewJoinMessage(name string, at time.Time) Message {
	return Message{
		From: name,
		To:   Broadcast,
		Text: JoinText,
		Type: MessageTypeStatus,
		Time: FormatTime(at),
	}
}

// VisibleTo reports whether viewer may see the message in their history.
// Every message of type "message" is visible regardless of recipient.
func (m Message) VisibleTo(viewer string) bool {
	return m.From == viewer ||
		m.To == viewer ||
		m.To == Broadcast ||
		m.Type == MessageTypeMessage
}

// SortNewestFirst orders messages by their formatted time, descending.
// The comparison is on the HH:mm:ss string, so it only holds within a day.
// Messages sharing a time keep their relative order.
func SortNewestFirst(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Time > messages[j].Time
	})
}

// HistoryQuery selects the messages visible to a viewer
type HistoryQuery struct {
	Viewer string
	Limit  int // 0 means unbounded
}
