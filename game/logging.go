package game

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/flap/telemetry"
)

// logWriter is the destination for perf breakdowns; nil disables them.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs the tick timing breakdown for the finished generation.
func (g *Game) logPerfStats(perf telemetry.PerfStats) {
	Logf("=== Perf @ Gen %d (%d ticks, %d birds) ===", g.generation, g.tick, len(g.controllers))
	Logf("Avg tick: %s (min %s, max %s) | %.0f ticks/s",
		perf.AvgTickDuration.Round(time.Microsecond),
		perf.MinTickDuration.Round(time.Microsecond),
		perf.MaxTickDuration.Round(time.Microsecond),
		perf.TicksPerSecond,
	)

	for _, name := range telemetry.PhaseNames() {
		avg, ok := perf.PhaseAvg[name]
		if !ok {
			continue
		}
		Logf("  %-12s %10s  %5.1f%%", name, avg.Round(time.Microsecond), perf.PhasePct[name])
	}
	Logf("")
}
