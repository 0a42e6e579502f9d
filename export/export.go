// Package export renders a resolved range as text, JSON, YAML or an
// iCalendar event.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"chronoscope/scope"
	"chronoscope/timeutil"
)

// Format selects the output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
	ICS  Format = "ics"
)

// Formats lists every supported format.
var Formats = []Format{Text, JSON, YAML, ICS}

// ParseFormat accepts a format name, ignoring case. "ical" and "yml" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "ics", "ical":
		return ICS, nil
	}
	return "", errors.Errorf("unknown format %q (want text, json, yaml or ics)", s)
}

// Record is the exported view of one range change.
type Record struct {
	From               time.Time          `json:"from" yaml:"from"`
	To                 time.Time          `json:"to" yaml:"to"`
	Duration           string             `json:"duration" yaml:"duration"`
	Label              string             `json:"label" yaml:"label"`
	Source             scope.ChangeSource `json:"source,omitempty" yaml:"source,omitempty"`
	QuickLabel         string             `json:"quick_label,omitempty" yaml:"quick_label,omitempty"`
	RelativeExpression string             `json:"relative_expression,omitempty" yaml:"relative_expression,omitempty"`
}

// NewRecord builds a Record. Label is the display label of the range.
func NewRecord(r timeutil.TimeRange, label string, meta scope.ChangeMeta) Record {
	return Record{
		From:               r.From,
		To:                 r.To,
		Duration:           timeutil.FormatDuration(timeutil.RangeDuration(r)),
		Label:              label,
		Source:             meta.Source,
		QuickLabel:         meta.QuickLabel,
		RelativeExpression: meta.RelativeExpression,
	}
}

// Write encodes rec to w.
func Write(w io.Writer, rec Record, f Format) error {
	switch f {
	case Text, "":
		return writeText(w, rec)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(rec), "encode json")
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	case ICS:
		return writeICS(w, rec, time.Now())
	}
	return errors.Errorf("unknown format %q", f)
}

func writeText(w io.Writer, rec Record) error {
	line := fmt.Sprintf("%s → %s  %s",
		timeutil.FormatDateTime(rec.From), timeutil.FormatDateTime(rec.To), rec.Duration)

	var tags []string
	if rec.Source != "" {
		tags = append(tags, string(rec.Source))
	}
	if rec.Label != "" {
		tags = append(tags, rec.Label)
	}
	if rec.RelativeExpression != "" {
		tags = append(tags, rec.RelativeExpression)
	}
	if len(tags) > 0 {
		line += "  (" + strings.Join(tags, ", ") + ")"
	}
	_, err := fmt.Fprintln(w, line)
	return errors.Wrap(err, "write text")
}

func writeICS(w io.Writer, rec Record, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//chronoscope//range export//EN")

	ev := cal.AddEvent(uuid.NewString() + "@chronoscope")
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(rec.From)
	ev.SetEndAt(rec.To)
	summary := rec.Label
	if summary == "" {
		summary = timeutil.FormatRangeLabel(rec.From, rec.To, "", nil)
	}
	ev.SetSummary(summary)
	if rec.RelativeExpression != "" {
		ev.SetDescription("relative: " + rec.RelativeExpression)
	}

	_, err := io.WriteString(w, cal.Serialize())
	return errors.Wrap(err, "write ics")
}
