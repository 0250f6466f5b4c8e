package main

import (
	"time"

	"github.com/justyntemme/dronesynth/pkg/framework/debug"
	"github.com/justyntemme/dronesynth/pkg/framework/plugin"
	"github.com/justyntemme/dronesynth/pkg/framework/process"
)

// profiledProcessor times every block and collects output statistics
type profiledProcessor struct {
	plugin.Processor
	profiler *debug.BlockProfiler
	analyzer *debug.AudioAnalyzer
}

func newProfiledProcessor(p plugin.Processor, sampleRate float64) *profiledProcessor {
	return &profiledProcessor{
		Processor: p,
		profiler:  debug.NewBlockProfiler(sampleRate),
		analyzer:  debug.NewAudioAnalyzer(),
	}
}

func (p *profiledProcessor) ProcessAudio(ctx *process.Context) {
	start := time.Now()
	p.Processor.ProcessAudio(ctx)
	p.profiler.Record(profileSection, time.Since(start))

	for ch := range ctx.Output {
		p.analyzer.Add(ctx.Output[ch])
	}
}
