package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSection_MarshalKeepsOrderAndStatusAsymmetry(t *testing.T) {
	s := Section{
		{Name: "web", URL: "https://web.example", Result: Result{
			Code: 200, Numeric: true, Status: Status{Level: LevelOK, Text: "🟢 OK (200)"},
		}},
		{Name: "openai", URL: "https://status.openai.com", Result: Result{
			Status: Status{Level: LevelOK, Text: "🟢 OK (All Systems Operational)"},
		}},
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	want := `{"web_status":200,"web_state":"🟢 OK (200)","web_url":"https://web.example",` +
		`"openai_status":"🟢 OK (All Systems Operational)","openai_state":"🟢 OK (All Systems Operational)",` +
		`"openai_url":"https://status.openai.com"}`
	if got != want {
		t.Fatalf("unexpected json:\n got=%s\nwant=%s", got, want)
	}
}

func TestSection_EmptyIsObject(t *testing.T) {
	b, err := json.Marshal(Section(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Fatalf("want {}, got %s", b)
	}
}

func TestReport_JSONShape(t *testing.T) {
	r := Report{
		Timestamp:     time.Date(2025, 8, 18, 12, 0, 0, 123e6, time.UTC),
		ExecutionTime: 1234567 * time.Microsecond,
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, `{"timestamp":"2025-08-18T12:00:00.123Z","internos":{},"empresa":{},"externos":{}`) {
		t.Fatalf("unexpected prefix: %s", got)
	}
	if !strings.HasSuffix(got, `"execution_time_seconds":1.23}`) {
		t.Fatalf("unexpected duration: %s", got)
	}
}

func TestParseProbeKind(t *testing.T) {
	cases := []struct {
		in   string
		want ProbeKind
		err  bool
	}{
		{"", KindGeneric, false},
		{"statuspage", KindStatusPage, false},
		{"selfcheck", KindSelfCheck, false},
		{"ping", "", true},
	}
	for _, c := range cases {
		got, err := ParseProbeKind(c.in)
		if (err != nil) != c.err || got != c.want {
			t.Fatalf("ParseProbeKind(%q)=%q,%v", c.in, got, err)
		}
	}
}
