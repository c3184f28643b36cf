package posts

import (
	"strings"
	"time"

	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	offsetLayout   = "2006-01-02 15:04:05-07:00"
)

// FormatDate coerces a frontmatter date into the wire representation. Text
// values pass through trimmed. A timestamp on UTC midnight becomes a calendar
// date, any other UTC timestamp a date-time, and a timestamp with a non-zero
// offset keeps that offset. A missing date yields nil.
func FormatDate(value interfaces.FrontMatterDate) *string {
	if text := strings.TrimSpace(value.Text); text != "" {
		return &text
	}
	if value.Time.IsZero() {
		return nil
	}

	t := value.Time
	layout := dateTimeLayout
	switch {
	case hasOffset(t):
		layout = offsetLayout
	case isMidnight(t):
		layout = dateLayout
	}
	formatted := t.Format(layout)
	return &formatted
}

func hasOffset(t time.Time) bool {
	_, offset := t.Zone()
	return offset != 0
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
