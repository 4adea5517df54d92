package attendance

import (
	"time"

	"qrattend/internal/qr"
)

// TimestampLayout renders scan times as yyyy-MM-dd HH:mm:ss.
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one attendance record in spreadsheet column order.
type Row struct {
	School      string
	StudentID   string
	StudentName string
	Timestamp   string
	DeviceMAC   string
}

// NewRow stamps parsed badge fields with the local scan time and device address.
func NewRow(f qr.Fields, when time.Time, deviceMAC string) Row {
	return Row{
		School:      f.School,
		StudentID:   f.StudentID,
		StudentName: f.StudentName,
		Timestamp:   FormatTimestamp(when),
		DeviceMAC:   deviceMAC,
	}
}

// FormatTimestamp formats t in the local time zone.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Values returns the row as the five ordered cells sent to the sheet.
func (r Row) Values() []string {
	return []string{r.School, r.StudentID, r.StudentName, r.Timestamp, r.DeviceMAC}
}
