package domain

import "time"

// DispositionKind is the outcome class of routing one inbound message
type DispositionKind string

const (
	DispositionIgnored   DispositionKind = "ignored"
	DispositionEscalate  DispositionKind = "escalate_to_human"
	DispositionCanned    DispositionKind = "canned_reply"
	DispositionGenerated DispositionKind = "generative_reply"
)

// Disposition is the router's decision for one message
type Disposition struct {
	Kind     DispositionKind
	OptionID string // Set for DispositionCanned
	Reply    string // Canned text for DispositionCanned
}

// AuditRecord is one append-only row in an escalation or interest log
type AuditRecord struct {
	Sender    string
	Text      string
	Timestamp time.Time
}

// AuditTimeLayout is the timestamp format written to log rows
const AuditTimeLayout = "2006-01-02 15:04:05"

// Row renders the record as [sender, text, timestamp]
func (r AuditRecord) Row() []string {
	return []string{r.Sender, r.Text, r.Timestamp.Local().Format(AuditTimeLayout)}
}
