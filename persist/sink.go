package persist

import "github.com/sarchlab/spimdf/timing/pipeline"

// Sink is anything that wants to see every cycle's CPU state as a run
// progresses: the mandatory simulation.txt writer and the optional
// SQLite writer both satisfy it, so Drain can feed either or both
// without the caller hand-rolling the run loop.
//
//go:generate mockgen -destination "mock_sink_test.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/spimdf/persist Sink
type Sink interface {
	WriteCycle(cpu *pipeline.CPU) error
}

// Drain clocks cpu to completion, writing every cycle to every sink in
// order. It stops and returns the error the first time a sink fails to
// write a cycle.
func Drain(cpu *pipeline.CPU, maxCycles uint64, sinks ...Sink) (uint64, error) {
	var ran uint64
	for !cpu.Done() {
		if maxCycles > 0 && ran >= maxCycles {
			break
		}
		cpu.Clock()
		ran++
		for _, sink := range sinks {
			if err := sink.WriteCycle(cpu); err != nil {
				return ran, err
			}
		}
	}
	return ran, nil
}
