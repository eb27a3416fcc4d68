package model

import (
	"fmt"
	"strings"
	"time"
)

// HistoryTimeLayout is the timestamp format of a history line
const HistoryTimeLayout = "2006-01-02 15:04"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// HistoryRecord is one completed download in the history log
type HistoryRecord struct {
	Timestamp time.Time
	Kind      Mode
	Title     string
	URL       string
}

// Line renders the record as `[YYYY-MM-DD HH:MM] <Kind> - "<Title>" - <URL>`.
// Line breaks in the title or URL are flattened so a record is always one line.
func (h HistoryRecord) Line() string {
	return fmt.Sprintf("[%s] %s - \"%s\" - %s",
		h.Timestamp.Format(HistoryTimeLayout), h.Kind, lineBreaks.Replace(h.Title), lineBreaks.Replace(h.URL))
}
