package domain

import "fmt"

// Notification - данные для письма о новых сценах
type Notification struct {
	AOIName   string
	Time      string
	NewScenes int
}

type NotifyStatus string

const (
	NotifySent    NotifyStatus = "sent"
	NotifyFailed  NotifyStatus = "failed"
	NotifySkipped NotifyStatus = "skipped"
)

// NotifyResult types the outcome of a send; a failure never aborts the cycle.
type NotifyResult struct {
	Status NotifyStatus `json:"status"`
	Reason error        `json:"-"`
}

func Sent() NotifyResult {
	return NotifyResult{Status: NotifySent}
}

func Failed(reason error) NotifyResult {
	if reason == nil {
		reason = fmt.Errorf("unknown notification failure")
	}
	return NotifyResult{Status: NotifyFailed, Reason: reason}
}

// Skipped marks a notification that was deliberately not sent, e.g. mail is disabled.
func Skipped() NotifyResult {
	return NotifyResult{Status: NotifySkipped}
}

func (r NotifyResult) OK() bool {
	return r.Status == NotifySent
}

func (r NotifyResult) IsFailed() bool {
	return r.Status == NotifyFailed
}

// EmailMessage is a fully rendered plaintext email.
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}
