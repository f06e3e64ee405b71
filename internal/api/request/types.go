package request

// RegisterParticipantRequest is the request body for joining the room
type RegisterParticipantRequest struct {
	Name string `json:"name"`
}

// PostMessageRequest is the request body for sending a message.
// The sender is taken from the User header.
type PostMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}
