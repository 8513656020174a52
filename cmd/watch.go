package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/mj1618/inspector-gadget/internal/engine"
	"github.com/mj1618/inspector-gadget/internal/model"
	"github.com/mj1618/inspector-gadget/internal/platform"
	"github.com/mj1618/inspector-gadget/internal/scenario"
	"github.com/mj1618/inspector-gadget/internal/sink"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the observation engine over a scenario and stream changes as JSONL",
	Long: `Build the host UI tree described by a scenario file, start the observation
engine over it, execute the scenario's mutation steps, and emit every detected
text change as JSONL to stdout.

Each line is a JSON object: a snapshot event, change events as they are
detected (intercepted set-text calls synchronously, accessibility-layer
changes on the next poll), diagnostics, and a final done event.

Output is always JSONL regardless of the --format flag.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("scenario", "", "Scenario YAML file (required)")
	watchCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
	watchCmd.Flags().Int("duration", 0, "Min seconds to keep watching after the steps finish (0 = one final poll)")
	watchCmd.Flags().Bool("quiet-diag", false, "Suppress diagnostic events in the stream")
	_ = watchCmd.MarkFlagRequired("scenario")
}

// noDiag drops diagnostic messages while passing records through.
type noDiag struct {
	sink.Sink
}

func (noDiag) Diag(string) {}

func runWatch(cmd *cobra.Command, args []string) error {
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	intervalMs, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")
	quietDiag, _ := cmd.Flags().GetBool("quiet-diag")

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	world, err := sc.Build()
	if err != nil {
		return fmt.Errorf("build scenario: %w", err)
	}

	interval := time.Duration(intervalMs) * time.Millisecond

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	var eventCount atomic.Int64
	var snk sink.Sink = sink.NewMulti(
		sink.NewJSONLSink(os.Stdout),
		&sink.CallbackSink{OnRecord: func(model.ChangeRecord) { eventCount.Add(1) }},
	)
	if quietDiag {
		snk = noDiag{snk}
	}

	// Baseline snapshot before the engine observes anything
	snap := platform.SnapshotLabels(world.App)
	enc.Encode(map[string]interface{}{
		"type":  "snapshot",
		"ts":    time.Now().Unix(),
		"count": len(snap.Elements),
	})

	start := time.Now()
	eng := engine.New(world.App, engine.Config{Interval: interval, Sink: snk})
	eng.Start()
	defer eng.Stop()

	if err := world.Run(sc.Steps, eng.LogText); err != nil {
		enc.Encode(map[string]interface{}{
			"type":  "error",
			"ts":    time.Now().Unix(),
			"error": err.Error(),
		})
	}

	// Let the poller observe anything the final steps changed.
	if durationSec > 0 {
		deadline := start.Add(time.Duration(durationSec) * time.Second)
		if remaining := time.Until(deadline); remaining > 0 {
			time.Sleep(remaining)
		}
	} else {
		time.Sleep(interval + interval/2)
	}

	eng.Stop()

	elapsed := time.Since(start)
	enc.Encode(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", elapsed.Seconds()),
		"events":  eventCount.Load(),
	})

	return nil
}
