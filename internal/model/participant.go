package model

import "time"

// Participant is a registered chat identity
type Participant struct {
	Name       string `json:"name" bson:"name"`
	LastStatus int64  `json:"lastStatus" bson:"lastStatus"` // ms since epoch
}

// NewParticipant creates a participant whose last status is the given instant
func NewParticipant(name string, at time.Time) Participant {
	return Participant{
		Name:       name,
		LastStatus: at.UnixMilli(),
	}
}
