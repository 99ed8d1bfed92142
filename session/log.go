package session

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Log collects the short, timestamped progress lines shown to the user next
// to a response. Every line is also sent to the process log at debug level.
type Log struct {
	lines []string
	now   func() time.Time
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

func (l *Log) Add(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logrus.Debug(msg)
	l.lines = append(l.lines, fmt.Sprintf("[%s] %s", l.now().Format("15:04:05"), msg))
}

func (l *Log) Lines() []string {
	if l.lines == nil {
		return []string{}
	}
	return l.lines
}
