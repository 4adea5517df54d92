package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"qrattend/internal/attendance"
)

// AppendError reports a rejected or failed append call. StatusCode is zero
// when no response was received.
type AppendError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AppendError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("append failed: %v", e.Err)
	}
	return fmt.Sprintf("append failed (%d): %s", e.StatusCode, e.Body)
}

func (e *AppendError) Unwrap() error { return e.Err }

// Client appends rows to one sheet of a spreadsheet.
type Client struct {
	BaseURL       string
	SpreadsheetID string
	SheetName     string
	HTTP          *http.Client
}

// NewClient creates a client. A nil http client uses http.DefaultClient.
func NewClient(baseURL, spreadsheetID, sheetName string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		SpreadsheetID: spreadsheetID,
		SheetName:     sheetName,
		HTTP:          client,
	}
}

type appendRequest struct {
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

type appendResponse struct {
	Updates struct {
		UpdatedRange string `json:"updatedRange"`
		UpdatedRows  int    `json:"updatedRows"`
	} `json:"updates"`
}

// AppendURL returns the values:append endpoint with RAW input and row insertion.
func (c *Client) AppendURL() string {
	q := url.Values{}
	q.Set("valueInputOption", "RAW")
	q.Set("insertDataOption", "INSERT_ROWS")
	q.Set("includeValuesInResponse", "true")
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?%s",
		c.BaseURL, url.PathEscape(c.SpreadsheetID), url.PathEscape(c.SheetName), q.Encode())
}

// Append posts row as a single new line at the end of the sheet. There is no
// idempotence key: repeating a call after a lost response duplicates the row.
func (c *Client) Append(ctx context.Context, token string, row attendance.Row) error {
	body, err := json.Marshal(appendRequest{
		MajorDimension: "ROWS",
		Values:         [][]string{row.Values()},
	})
	if err != nil {
		return &AppendError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AppendURL(), bytes.NewReader(body))
	if err != nil {
		return &AppendError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &AppendError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &AppendError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out appendResponse
	if err := json.Unmarshal(respBody, &out); err == nil && out.Updates.UpdatedRange != "" {
		log.Printf("sheets: appended %d row(s) at %s", out.Updates.UpdatedRows, out.Updates.UpdatedRange)
	} else {
		log.Printf("sheets: append ok (%d)", resp.StatusCode)
	}
	return nil
}
