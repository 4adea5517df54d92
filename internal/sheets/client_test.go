package sheets_test

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"qrattend/internal/attendance"
	"qrattend/internal/sheets"
	"qrattend/internal/sheets/sheetstest"
)

var testRow = attendance.Row{
	School:      "Escuela 12",
	StudentID:   "A001",
	StudentName: "Ana Ruiz",
	Timestamp:   "2026-03-09 07:05:04",
	DeviceMAC:   "02:00:00:00:00:00",
}

func TestAppend(t *testing.T) {
	g := sheetstest.New(t)
	client := sheets.NewClient(g.BaseURL()+"/", "sheet-1", "Registro", g.Server.Client())

	if err := client.Append(context.Background(), "tok123", testRow); err != nil {
		t.Fatalf("Append() = %v", err)
	}

	calls := g.Appends()
	if len(calls) != 1 {
		t.Fatalf("append calls = %d, want 1", len(calls))
	}
	call := calls[0]
	if call.Path != "/v4/spreadsheets/sheet-1/values/Registro:append" {
		t.Fatalf("path = %q", call.Path)
	}
	if call.Authorization != "Bearer tok123" {
		t.Fatalf("authorization = %q", call.Authorization)
	}
	for key, want := range map[string]string{
		"valueInputOption":        "RAW",
		"insertDataOption":        "INSERT_ROWS",
		"includeValuesInResponse": "true",
	} {
		if got := call.Query.Get(key); got != want {
			t.Fatalf("query %s = %q, want %q", key, got, want)
		}
	}
	if call.Body["majorDimension"] != "ROWS" {
		t.Fatalf("majorDimension = %v", call.Body["majorDimension"])
	}
	want := []any{[]any{"Escuela 12", "A001", "Ana Ruiz", "2026-03-09 07:05:04", "02:00:00:00:00:00"}}
	if !reflect.DeepEqual(call.Body["values"], want) {
		t.Fatalf("values = %v, want %v", call.Body["values"], want)
	}
}

func TestAppendRejected(t *testing.T) {
	g := sheetstest.New(t)
	g.AppendStatus = http.StatusForbidden
	g.AppendBody = `{"error":{"code":403,"status":"PERMISSION_DENIED"}}`
	client := sheets.NewClient(g.BaseURL(), "sheet-1", "Registro", g.Server.Client())

	err := client.Append(context.Background(), "tok123", testRow)
	var appendErr *sheets.AppendError
	if !errors.As(err, &appendErr) {
		t.Fatalf("Append() error = %v, want AppendError", err)
	}
	if appendErr.StatusCode != http.StatusForbidden || appendErr.Body != g.AppendBody {
		t.Fatalf("AppendError = %+v", appendErr)
	}
}

func TestAppendURLEscapesSheetName(t *testing.T) {
	client := sheets.NewClient("https://sheets.googleapis.com", "id", "Hoja 1", nil)
	want := "https://sheets.googleapis.com/v4/spreadsheets/id/values/Hoja%201:append?includeValuesInResponse=true&insertDataOption=INSERT_ROWS&valueInputOption=RAW"
	if got := client.AppendURL(); got != want {
		t.Fatalf("AppendURL() = %q, want %q", got, want)
	}
}
