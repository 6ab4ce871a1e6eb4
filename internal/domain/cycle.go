package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamArchiveAlerts is the default Redis stream for AlertEvent messages.
const StreamArchiveAlerts = "stream:archive:alerts"

// CycleResult - итог одного цикла оповещения
type CycleResult struct {
	CycleID      uuid.UUID     `json:"cycle_id"`
	AOIFile      string        `json:"aoi_file"`
	AOIName      string        `json:"aoi_name"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	SceneCount   int           `json:"scene_count"`
	Decision     Decision      `json:"decision"`
	Notification *NotifyResult `json:"notification,omitempty"`
	ReportPath   string        `json:"report_path"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
}

// Notified reports whether an email was actually sent; skipped and failed sends are false.
func (r *CycleResult) Notified() bool {
	return r.Notification != nil && r.Notification.OK()
}

// AlertEvent - событие о новых сценах, публикуется в стрим
type AlertEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	CycleID     uuid.UUID `json:"cycle_id"`
	AOIName     string    `json:"aoi_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	NewScenes   int       `json:"new_scenes"`
	TotalScenes int       `json:"total_scenes"`
	ReportPath  string    `json:"report_path"`
	EmailSent   bool      `json:"email_sent"`
}
