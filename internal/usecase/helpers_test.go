package usecase_test

import (
	"fmt"
	"io"
	"time"

	"github.com/labstack/gommon/log"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("evt-%d", g.n)
}

type recordingMetrics struct{ results []string }

func (m *recordingMetrics) ObserveCheckout(result string) {
	m.results = append(m.results, result)
}

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}
