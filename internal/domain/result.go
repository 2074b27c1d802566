package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// Level is the tri-state health of a target.
type Level int

const (
	LevelDown Level = iota
	LevelWarning
	LevelOK
)

// String returns the emoji-free label.
func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelWarning:
		return "warning"
	default:
		return "down"
	}
}

// Status is a classified outcome with its human-readable text.
type Status struct {
	Level Level
	Text  string
}

// Result is the outcome of probing one target.
//
// Numeric marks results whose raw code is what the "_status" field carries
// (generic probes). For every other strategy that field repeats Text.
type Result struct {
	Code    int
	Status  Status
	Numeric bool
}

// Entry is one row of a section report.
type Entry struct {
	Name   string
	URL    string
	Result Result
}

// Section is the report for one service group, in configuration order.
type Section []Entry

// MarshalJSON writes the flat <name>_status/_state/_url object, keeping
// target order.
func (s Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}
	for _, e := range s {
		var status any = e.Result.Status.Text
		if e.Result.Numeric {
			status = e.Result.Code
		}
		if err := write(e.Name+"_status", status); err != nil {
			return nil, err
		}
		if err := write(e.Name+"_state", e.Result.Status.Text); err != nil {
			return nil, err
		}
		if err := write(e.Name+"_url", e.URL); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TimestampLayout matches the ISO-8601 form with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Report is the root output of one health-check run.
type Report struct {
	Timestamp     time.Time
	Internal      Section
	Company       Section
	External      Section
	ExecutionTime time.Duration
}

type reportJSON struct {
	Timestamp     string  `json:"timestamp"`
	Internal      Section `json:"internos"`
	Company       Section `json:"empresa"`
	External      Section `json:"externos"`
	ExecutionTime float64 `json:"execution_time_seconds"`
}

// Seconds returns the execution time rounded to two decimals.
func (r Report) Seconds() float64 {
	return math.Round(r.ExecutionTime.Seconds()*100) / 100
}

func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Timestamp:     r.Timestamp.UTC().Format(TimestampLayout),
		Internal:      r.Internal,
		Company:       r.Company,
		External:      r.External,
		ExecutionTime: r.Seconds(),
	})
}

// Entries returns the total number of entries across all sections.
func (r Report) Entries() int {
	return len(r.Internal) + len(r.Company) + len(r.External)
}
