package response

import (
	"github.com/samber/lo"

	"github.com/mcoot/batepapo/internal/model"
)

// Participant is the API representation of a participant
type Participant struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"`
}

// Message is the API representation of a message
type Message struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// ParticipantFromModel converts a model.Participant to a response Participant
func ParticipantFromModel(p model.Participant) Participant {
	return Participant{
		Name:       p.Name,
		LastStatus: p.LastStatus,
	}
}

// ParticipantsFromModel converts participants, never returning nil
func ParticipantsFromModel(participants []model.Participant) []Participant {
	return lo.Map(participants, func(p model.Participant, _ int) Participant {
		return ParticipantFromModel(p)
	})
}

// MessageFromModel converts a model.Message to a response Message
func MessageFromModel(m model.Message) Message {
	return Message{
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: string(m.Type),
		Time: m.Time,
	}
}

// MessagesFromModel converts messages, never returning nil
func MessagesFromModel(messages []model.Message) []Message {
	return lo.Map(messages, func(m model.Message, _ int) Message {
		return MessageFromModel(m)
	})
}
