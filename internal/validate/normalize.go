package validate

import (
	"strings"
	"time"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// blankMarkers are textual placeholders spreadsheet exports use for missing values.
var blankMarkers = map[string]bool{"nan": true, "nat": true, "none": true}

// normalizeText trims s and maps blank markers to "".
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	if blankMarkers[strings.ToLower(s)] {
		return ""
	}
	return s
}

// cellText is normalizeText over a cell's display form.
func cellText(c table.Cell) string {
	if c.IsEmpty() {
		return ""
	}
	return normalizeText(c.String())
}

// dateLayouts are tried in order. Day-first layouts come first, matching the Latin
// American exports this tool reads; month-first layouts only catch values whose
// first number cannot be a day-first month, such as "1/15/2025".
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"2006/01/02 15:04:05",
}

// NormalizeDate renders a cell as YYYY-MM-DD. Text that is not a recognizable date
// falls back to its first ten characters; blanks yield "".
func NormalizeDate(c table.Cell) string {
	switch c.Kind {
	case table.KindEmpty:
		return ""
	case table.KindTime:
		return c.Time.Format("2006-01-02")
	}

	text := strings.TrimSpace(c.String())
	if text == "" || blankMarkers[strings.ToLower(text)] {
		return ""
	}
	if c.Kind == table.KindText {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return normalizeText(truncateRunes(text, 10))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
