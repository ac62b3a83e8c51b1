package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Formatter renders entries as text with the target (if any) in front of the message
type Formatter struct {
	logrus.TextFormatter
}

func newFormatter(noColors bool) *Formatter {
	return &Formatter{
		logrus.TextFormatter{
			DisableColors:   noColors,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		},
	}
}

// Format implements logrus.Formatter
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	target, ok := entry.Data["target"]
	if !ok {
		return f.TextFormatter.Format(entry)
	}
	e := entry.Dup()
	delete(e.Data, "target")
	e.Level = entry.Level
	e.Caller = entry.Caller
	e.Message = fmt.Sprintf("[%v] %s", target, entry.Message)
	return f.TextFormatter.Format(e)
}
