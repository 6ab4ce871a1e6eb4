package domain

import (
	"fmt"
	"time"
)

// LogEntry - строка текстового журнала поиска
type LogEntry struct {
	Date    string
	AOIName string
	Time    string
	Count   int
}

// NewLogEntry stamps an entry with the UTC date and 12-hour UTC time of at.
func NewLogEntry(aoiName string, count int, at time.Time) LogEntry {
	utc := at.UTC()
	return LogEntry{
		Date:    utc.Format(DateLayout),
		AOIName: aoiName,
		Time:    utc.Format(TimeLayout),
		Count:   count,
	}
}

// Line renders "date,aoi_name,time,count" without a trailing newline.
func (e LogEntry) Line() string {
	return fmt.Sprintf("%s,%s,%s,%d", e.Date, e.AOIName, e.Time, e.Count)
}
