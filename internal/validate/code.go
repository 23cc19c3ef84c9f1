package validate

import (
	"regexp"
	"strings"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// CodeExtractor pulls a structured activity code out of free text.
// An empty result means the text carries no code; that is not an error.
type CodeExtractor interface {
	Extract(text string) string
}

// activityCodeRe matches codes such as "PODA-020-L001", "MANT-CAM-007-L010" or
// "MANT CAM-007-L010".
var activityCodeRe = regexp.MustCompile(`(?i)([a-z]+(?:(?:\s*|-)CAM)?-\d{3}-L\d{3})`)

// PatternExtractor extracts codes with a regular expression. The first submatch (or
// the whole match when the pattern has no group) is the code.
type PatternExtractor struct {
	re *regexp.Regexp
}

// NewPatternExtractor returns an extractor for re, or for the standard activity-code
// pattern when re is nil.
func NewPatternExtractor(re *regexp.Regexp) *PatternExtractor {
	if re == nil {
		re = activityCodeRe
	}
	return &PatternExtractor{re: re}
}

// Extract returns the first code in text, upper-cased with whitespace removed.
func (p *PatternExtractor) Extract(text string) string {
	text = normalizeText(text)
	if text == "" {
		return ""
	}
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	code := m[0]
	if len(m) > 1 {
		code = m[1]
	}
	return NormalizeCode(code)
}

// NormalizeCode upper-cases a code and strips all whitespace from it.
func NormalizeCode(code string) string {
	return strings.Join(strings.Fields(strings.ToUpper(code)), "")
}

// InferOptions tunes activity-code column inference.
type InferOptions struct {
	SampleSize int     // non-empty values sampled per column; default 500
	MinScore   float64 // minimum extractable fraction; default 0.45
}

func (o InferOptions) withDefaults() InferOptions {
	if o.SampleSize <= 0 {
		o.SampleSize = 500
	}
	if o.MinScore <= 0 {
		o.MinScore = 0.45
	}
	return o
}

// CodeColumnScore is the inference score of one candidate column.
type CodeColumnScore struct {
	Column string
	Score  float64
}

// InferCodeColumn looks for the column that most often contains activity codes.
// Columns in excluded are skipped. The best column is returned only when its score
// reaches opts.MinScore; ties keep the leftmost column.
func InferCodeColumn(t *table.Table, excluded map[string]bool, ex CodeExtractor, opts InferOptions) (string, bool) {
	best, ok := bestCodeColumn(ScoreCodeColumns(t, excluded, ex, opts))
	if !ok || best.Score < opts.withDefaults().MinScore {
		return "", false
	}
	return best.Column, true
}

// ScoreCodeColumns computes the extractable-code fraction of every candidate
// column, in column order. Columns with no non-empty values are omitted.
func ScoreCodeColumns(t *table.Table, excluded map[string]bool, ex CodeExtractor, opts InferOptions) []CodeColumnScore {
	opts = opts.withDefaults()
	var scores []CodeColumnScore
	for ci, col := range t.Columns {
		if excluded[col] {
			continue
		}
		sampled, hits := 0, 0
		for _, row := range t.Rows {
			if sampled >= opts.SampleSize {
				break
			}
			v := cellText(row[ci])
			if v == "" {
				continue
			}
			sampled++
			if ex.Extract(v) != "" {
				hits++
			}
		}
		if sampled == 0 {
			continue
		}
		scores = append(scores, CodeColumnScore{Column: col, Score: float64(hits) / float64(sampled)})
	}
	return scores
}

func bestCodeColumn(scores []CodeColumnScore) (CodeColumnScore, bool) {
	var best CodeColumnScore
	found := false
	for _, s := range scores {
		if s.Score > best.Score {
			best = s
			found = true
		}
	}
	return best, found
}
