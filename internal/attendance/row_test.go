package attendance

import (
	"reflect"
	"testing"
	"time"

	"qrattend/internal/qr"
)

func TestNewRow(t *testing.T) {
	when := time.Date(2026, 3, 9, 7, 5, 4, 0, time.Local)
	row := NewRow(qr.Fields{School: "Escuela 12", StudentID: "A001", StudentName: "Ana Ruiz"}, when, "aa:bb:cc:dd:ee:ff")

	want := []string{"Escuela 12", "A001", "Ana Ruiz", "2026-03-09 07:05:04", "aa:bb:cc:dd:ee:ff"}
	if got := row.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %q, want %q", got, want)
	}
}

func TestFormatTimestampUsesLocalZone(t *testing.T) {
	utc := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if got, want := FormatTimestamp(utc), utc.In(time.Local).Format("2006-01-02 15:04:05"); got != want {
		t.Fatalf("FormatTimestamp() = %q, want %q", got, want)
	}
}
