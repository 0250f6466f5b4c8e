// Command drone renders the stereo drone to a WAV file or plays it live.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/justyntemme/dronesynth/pkg/dsp"
	"github.com/justyntemme/dronesynth/pkg/dsp/delay"
	"github.com/justyntemme/dronesynth/pkg/dsp/filter"
	"github.com/justyntemme/dronesynth/pkg/dsp/oscillator"
	"github.com/justyntemme/dronesynth/pkg/drone"
	"github.com/justyntemme/dronesynth/pkg/framework/debug"
	"github.com/justyntemme/dronesynth/pkg/output"
)

const profileSection = "process"

type options struct {
	sampleRate   int
	blockSize    int
	duration     time.Duration
	out          string
	play         bool
	logLevel     string
	logFile      string
	wrapReadHead bool
	mode         string
	osc          string
	lfo          string
	filter       string
	frequency    float64
	cutoff       float64
	resonance    float64
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	def := drone.DefaultConfig()
	var o options

	fs := flag.NewFlagSet("drone", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.sampleRate, "sample-rate", int(dsp.SampleRate48k), "sample rate in Hz")
	fs.IntVar(&o.blockSize, "block-size", dsp.DefaultBlockSize, "processing block size in samples")
	fs.DurationVar(&o.duration, "duration", 10*time.Second, "render length; with -play, 0 plays until quit")
	fs.StringVar(&o.out, "out", "drone.wav", "WAV file to render")
	fs.BoolVar(&o.play, "play", false, "play on the sound device instead of rendering")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn, error or off")
	fs.StringVar(&o.logFile, "log-file", "", "append log output to this file")
	fs.BoolVar(&o.wrapReadHead, "wrap-read-head", def.WrapReadHead, "wrap a negative delay read head instead of clamping it to 0")
	fs.StringVar(&o.mode, "mode", def.DelayMode.String(), "delay mode: feedback or feedforward")
	fs.StringVar(&o.osc, "osc", def.Waveform.String(), "oscillator waveform: sine, saw, square or triangle")
	fs.StringVar(&o.lfo, "lfo", def.LFOWaveform.String(), "cutoff LFO waveform")
	fs.StringVar(&o.filter, "filter", def.FilterType.String(), "filter type: lowpass, highpass, bandpass or allpass")
	fs.Float64Var(&o.frequency, "frequency", def.Frequency, "oscillator frequency in Hz (20-2000)")
	fs.Float64Var(&o.cutoff, "cutoff", def.Cutoff, "base filter cutoff in Hz")
	fs.Float64Var(&o.resonance, "resonance", def.Resonance, "filter Q")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

func buildConfig(o options) (drone.Config, error) {
	cfg := drone.DefaultConfig()

	var err error
	if cfg.Waveform, err = oscillator.ParseWaveform(o.osc); err != nil {
		return cfg, fmt.Errorf("-osc: %w", err)
	}
	if cfg.LFOWaveform, err = oscillator.ParseWaveform(o.lfo); err != nil {
		return cfg, fmt.Errorf("-lfo: %w", err)
	}
	if cfg.FilterType, err = filter.ParseType(o.filter); err != nil {
		return cfg, fmt.Errorf("-filter: %w", err)
	}
	if cfg.DelayMode, err = delay.ParseMode(o.mode); err != nil {
		return cfg, fmt.Errorf("-mode: %w", err)
	}
	cfg.Frequency = o.frequency
	cfg.Cutoff = o.cutoff
	cfg.Resonance = o.resonance
	cfg.WrapReadHead = o.wrapReadHead

	return cfg, cfg.Validate()
}

func newLogger(o options) (*debug.Logger, error) {
	level, err := debug.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("-log-level: %w", err)
	}

	logger := debug.New(os.Stderr, "", debug.DefaultFlags)
	if o.logFile != "" {
		if logger, err = debug.NewFileLogger(o.logFile, "", debug.DefaultFlags); err != nil {
			return nil, err
		}
	}
	logger.SetLevel(level)
	return logger, nil
}

func main() {
	o, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	logger, err := newLogger(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drone: %v\n", err)
		os.Exit(2)
	}
	defer logger.Close()

	if err := run(o, logger); err != nil {
		logger.Error("%v", err)
		logger.Close()
		os.Exit(1)
	}
}

func run(o options, logger *debug.Logger) error {
	cfg, err := buildConfig(o)
	if err != nil {
		return err
	}

	engine := drone.New(cfg, logger)
	logger.Info("%s", engine.Info())
	proc := newProfiledProcessor(engine, float64(o.sampleRate))

	if o.play {
		err = play(o, engine, proc, logger)
	} else {
		err = render(o, proc, logger)
	}
	if err != nil {
		return err
	}

	proc.analyzer.LogStats(logger, "output", proc.analyzer.Result())
	logger.Info("DSP load %.2f%% of real time", proc.profiler.Load(profileSection, o.blockSize))
	logger.Debug("block timings:\n%s", proc.profiler.Report())
	return nil
}

func render(o options, proc *profiledProcessor, logger *debug.Logger) error {
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	start := time.Now()
	if err := output.RenderWAV(f, proc, o.sampleRate, o.blockSize, o.duration); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Info("rendered %s of audio to %s in %s", o.duration, o.out, time.Since(start).Round(time.Millisecond))
	return nil
}

func play(o options, engine *drone.Engine, proc *profiledProcessor, logger *debug.Logger) error {
	player, err := output.NewPlayer(proc, o.sampleRate, o.blockSize)
	if err != nil {
		return err
	}
	defer player.Close()
	player.Start()

	var timeout <-chan time.Time
	if o.duration > 0 {
		timeout = time.After(o.duration)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var keys <-chan byte
	if tty, err := openTerminal(os.Stdin); err != nil {
		logger.Info("keyboard control unavailable: %v", err)
	} else {
		defer tty.Restore()
		keys = tty.Keys()
		fmt.Fprint(os.Stderr, keyHelp)
	}

	logger.Info("playing at %d Hz", o.sampleRate)
	for {
		select {
		case <-timeout:
			return nil
		case <-interrupt:
			return nil
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			status, quit := handleKey(engine, key)
			if quit {
				return nil
			}
			if status != "" {
				// raw mode needs an explicit carriage return
				fmt.Fprintf(os.Stderr, "%s\r\n", status)
			}
		}
	}
}
