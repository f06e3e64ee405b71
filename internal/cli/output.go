package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []Participant:
		o.printParticipants(v)
	case []Message:
		o.printMessages(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Participant response type (matches API)
type Participant struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"`
}

// Message response type
type Message struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printParticipants(participants []Participant) {
	_, _ = fmt.Fprintf(o.w, "Participants (%d):\n", len(participants))
	for _, p := range participants {
		_, _ = fmt.Fprintf(o.w, "  - %s\n", p.Name)
	}
}

func (o *Output) printMessages(messages []Message) {
	for _, m := range messages {
		_, _ = fmt.Fprintln(o.w, formatMessage(m))
	}
}

func formatMessage(m Message) string {
	switch m.Type {
	case "status":
		return fmt.Sprintf("(%s) %s %s", m.Time, m.From, m.Text)
	case "private_message":
		return fmt.Sprintf("(%s) %s reservadamente para %s: %s", m.Time, m.From, m.To, m.Text)
	default:
		return fmt.Sprintf("(%s) %s para %s: %s", m.Time, m.From, m.To, m.Text)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
