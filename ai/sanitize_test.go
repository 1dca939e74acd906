package ai

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONObjectPlain(t *testing.T) {
	raw, ok := ExtractJSONObject(`{"title": "Write report", "priority": "high"}`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("extracted text is not valid JSON: %v", err)
	}
	if m["title"] != "Write report" {
		t.Errorf("title = %q", m["title"])
	}
}

func TestExtractJSONObjectFencedBlock(t *testing.T) {
	text := "Here is your task:\n```json\n{\"title\": \"Buy milk\"}\n```\nLet me know if you need more."
	raw, ok := ExtractJSONObject(text)
	if !ok {
		t.Fatal("expected extraction from code block")
	}
	if raw != `{"title": "Buy milk"}` {
		t.Errorf("raw = %q", raw)
	}
}

func TestExtractJSONObjectLeadingProse(t *testing.T) {
	text := `Sure! The structured version is {"title": "Call dentist", "subtasks": ["find number", "call"]} and that should do it.`
	raw, ok := ExtractJSONObject(text)
	if !ok {
		t.Fatal("expected extraction with surrounding prose")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(m["subtasks"].([]any)) != 2 {
		t.Errorf("subtasks = %v", m["subtasks"])
	}
}

func TestExtractJSONObjectNested(t *testing.T) {
	text := `{"outer": {"inner": {"deep": true}}, "list": [{"a": 1}]}`
	raw, ok := ExtractJSONObject(text)
	if !ok || !json.Valid([]byte(raw)) {
		t.Fatalf("nested extraction failed: ok=%v raw=%q", ok, raw)
	}
}

func TestExtractJSONObjectTrailingComma(t *testing.T) {
	raw, ok := ExtractJSONObject(`{"title": "x", "subtasks": ["a", "b",],}`)
	if !ok {
		t.Fatal("expected repair of trailing commas")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("repaired text is not valid JSON: %v", err)
	}
}

func TestExtractJSONObjectTruncated(t *testing.T) {
	raw, ok := ExtractJSONObject(`{"title": "x", "priority": "high", "description": "got cut of`)
	if !ok {
		t.Fatal("expected repair of truncated object")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("repaired text is not valid JSON: %v", err)
	}
	if m["title"] != "x" {
		t.Errorf("title = %v", m["title"])
	}
}

func TestExtractJSONObjectControlCharacters(t *testing.T) {
	raw, ok := ExtractJSONObject("{\"title\": \"a\x01b\"}")
	if !ok {
		t.Fatal("expected control characters to be stripped")
	}
	if !json.Valid([]byte(raw)) {
		t.Fatalf("invalid JSON after stripping: %q", raw)
	}
}

func TestExtractJSONObjectNoJSON(t *testing.T) {
	for _, text := range []string{"", "no json here at all", "just } some { noise"} {
		if raw, ok := ExtractJSONObject(text); ok {
			t.Errorf("ExtractJSONObject(%q) = %q, want failure", text, raw)
		}
	}
}

func TestExtractJSONArray(t *testing.T) {
	text := "Insights:\n```\n[{\"type\": \"suggestion\", \"title\": \"t\"}]\n```"
	raw, ok := ExtractJSONArray(text)
	if !ok {
		t.Fatal("expected array extraction")
	}
	var arr []map[string]any
	if err := json.Unmarshal([]byte(raw), &arr); err != nil || len(arr) != 1 {
		t.Fatalf("arr = %v err = %v", arr, err)
	}
}

func TestExtractJSONArrayIgnoresBareObject(t *testing.T) {
	if _, ok := ExtractJSONArray(`{"not": "an array"}`); ok {
		t.Error("object should not satisfy an array extraction")
	}
}

// Extraction must never panic and must only ever report valid JSON.
func FuzzExtractJSONObject(f *testing.F) {
	f.Add(`{"a": 1}`)
	f.Add("```json\n{\"a\": [1, 2,]}\n```")
	f.Add(`prose {"a": {"b": "}"}} more prose`)
	f.Add(`{"trunc`)
	f.Add("{\"ctrl\": \"\x00\x1f\"}")
	f.Fuzz(func(t *testing.T, text string) {
		raw, ok := ExtractJSONObject(text)
		if ok && !json.Valid([]byte(raw)) {
			t.Errorf("reported valid but got invalid JSON: %q", raw)
		}
	})
}
