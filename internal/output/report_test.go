package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestReport_Accumulates(t *testing.T) {
	r := &Report{}
	if !r.Empty() {
		t.Error("new report should be empty")
	}

	r.Warnf("generic %s", "warning")
	r.SkipEntry("AB12", errors.New("render failed"))
	r.MissAttachment("photo", "F00D")

	if r.Empty() {
		t.Error("report with warnings reports empty")
	}
	if got := len(r.Warnings()); got != 3 {
		t.Errorf("Warnings() = %d messages, want 3", got)
	}
	if r.SkippedEntries() != 1 {
		t.Errorf("SkippedEntries() = %d, want 1", r.SkippedEntries())
	}
	if !strings.Contains(r.Warnings()[1], "AB12") {
		t.Errorf("skip warning = %q, want entry uuid", r.Warnings()[1])
	}
}

func TestReport_Summarize_Human(t *testing.T) {
	r := &Report{}
	r.Warnf("something odd")

	var buf bytes.Buffer
	r.Summarize(NewPrinter(&buf, false, false))

	out := buf.String()
	if !strings.Contains(out, "1 warnings") || !strings.Contains(out, "something odd") {
		t.Errorf("Summarize() output:\n%s", out)
	}
}

func TestReport_Summarize_JSON(t *testing.T) {
	r := &Report{}
	r.SkipEntry("AB12", errors.New("boom"))

	var buf bytes.Buffer
	r.Summarize(NewPrinter(&buf, true, false))

	var payload struct {
		Warnings       []string `json:"warnings"`
		SkippedEntries int      `json:"skipped_entries"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("Summarize() JSON invalid: %v\n%s", err, buf.String())
	}
	if len(payload.Warnings) != 1 || payload.SkippedEntries != 1 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestReport_Summarize_EmptyIsSilent(t *testing.T) {
	var buf bytes.Buffer
	(&Report{}).Summarize(NewPrinter(&buf, false, false))

	if buf.Len() != 0 {
		t.Errorf("Summarize() on empty report wrote %q", buf.String())
	}
}
