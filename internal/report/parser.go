package report

import "strings"

const (
	bulletMarker    = "• "
	emphasisDelimit = "**"
)

type RunKind string

const (
	RunPlain    RunKind = "plain"
	RunEmphasis RunKind = "emphasis"
)

type Run struct {
	Kind RunKind `json:"kind"`
	Text string  `json:"text"`
}

type LineKind string

const (
	TextLine   LineKind = "text"
	BulletLine LineKind = "bullet"
)

// Line is one rendered line of a care report. Text lines carry Runs,
// bullet lines carry Text.
type Line struct {
	Kind LineKind `json:"kind"`
	Runs []Run    `json:"runs,omitempty"`
	Text string   `json:"text,omitempty"`
}

// Parse splits an LLM report into lines of plain and emphasised runs.
// It never fails. Zero-length runs are kept; an unmatched trailing "**"
// leaves the last run emphasised.
func Parse(raw string) []Line {
	lines := []Line{}

	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}

		if strings.HasPrefix(l, bulletMarker) {
			lines = append(lines, Line{Kind: BulletLine, Text: strings.TrimPrefix(l, bulletMarker)})
			continue
		}

		lines = append(lines, Line{Kind: TextLine, Runs: splitRuns(l)})
	}

	return lines
}

func splitRuns(line string) []Run {
	tokens := strings.Split(line, emphasisDelimit)
	runs := make([]Run, 0, len(tokens))

	for i, tok := range tokens {
		kind := RunPlain
		if i%2 == 1 {
			kind = RunEmphasis
		}
		runs = append(runs, Run{Kind: kind, Text: tok})
	}
	return runs
}
