package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskpilot/backend/types"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calendar-link", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCalendarLinkHandler(t *testing.T) {
	rec := postJSON(t, CalendarLinkHandler, `{
		"taskId": "abc",
		"title": "Write report",
		"dueDate": "2026-09-10",
		"dueTime": "14:00",
		"estimatedTime": "1 hour",
		"priority": "high",
		"category": "work"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp types.CalendarLinkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	if !strings.Contains(resp.ICalContent, "SUMMARY:Write report") {
		t.Errorf("ical missing summary:\n%s", resp.ICalContent)
	}
	if !strings.Contains(resp.ICalContent, "DTSTART:20260910T140000Z") {
		t.Errorf("ical missing due-time start:\n%s", resp.ICalContent)
	}
	if !strings.Contains(resp.GoogleCalendarURL, "calendar.google.com") {
		t.Errorf("google url = %q", resp.GoogleCalendarURL)
	}
	if resp.Message != "Calendar event created" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCalendarLinkHandlerUpdateMessage(t *testing.T) {
	rec := postJSON(t, CalendarLinkHandler, `{"title": "t", "isUpdate": true}`)
	var resp types.CalendarLinkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Calendar event updated" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCalendarLinkHandlerRejectsMissingTitle(t *testing.T) {
	rec := postJSON(t, CalendarLinkHandler, `{"taskId": "abc"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp types.CalendarLinkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.ErrorMessage == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCalendarLinkHandlerRejectsBadJSON(t *testing.T) {
	rec := postJSON(t, CalendarLinkHandler, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
