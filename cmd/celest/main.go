package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AODtorusan/celest"
	"github.com/AODtorusan/celest/tle"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const dateFormat = time.RFC3339

var (
	mode     string
	body     string
	state    string
	epochStr string
	duration time.Duration
	step     time.Duration
	out      string
	metrics  string
	tleLine1 string
	tleLine2 string
	logLevel string
	logger   kitlog.Logger
)

func init() {
	flag.StringVar(&mode, "mode", "rv2oe", "one of rv2oe, oe2rv, prop, kepler, tle")
	flag.StringVar(&body, "body", "earth", "central body")
	flag.StringVar(&state, "state", "", "six comma separated values: rx,ry,rz,vx,vy,vz (m, m/s) or a,e,i,ω,Ω,ν (m, degrees)")
	flag.StringVar(&epochStr, "epoch", "", "initial epoch as RFC3339 (defaults to now)")
	flag.DurationVar(&duration, "duration", time.Hour, "propagation duration")
	flag.DurationVar(&step, "step", 10*time.Second, "propagation or sampling step")
	flag.StringVar(&out, "out", "", "output CSV file name in the configured output directory (stdout if unset)")
	flag.StringVar(&metrics, "metrics", "", "listen address serving /metrics while running")
	flag.StringVar(&tleLine1, "tle1", "", "first line of the two-line element set")
	flag.StringVar(&tleLine2, "tle2", "", "second line of the two-line element set")
	flag.StringVar(&logLevel, "log", "", "log level, overrides the configuration")
}

func main() {
	flag.Parse()
	conf := celest.CurrentConfig()
	if logLevel == "" {
		logLevel = conf.LogLevel
	}
	logger = celest.NewLogger(os.Stderr, logLevel)
	celest.SetLogger(logger)

	if metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", celest.MetricsHandler())
		go func() {
			if err := http.ListenAndServe(metrics, mux); err != nil {
				level.Error(logger).Log("subsys", "metrics", "addr", metrics, "err", err)
			}
		}()
	}

	epoch := time.Now().UTC()
	if epochStr != "" {
		var err error
		if epoch, err = time.Parse(dateFormat, epochStr); err != nil {
			fatal("invalid epoch", err)
		}
	}
	origin, err := celest.CelestialObjectFromString(body)
	if err != nil {
		fatal("invalid body", err)
	}

	switch mode {
	case "rv2oe":
		c := mustCartesian()
		k, err := c.ToKepler(origin)
		if err != nil {
			fatal("conversion failed", err)
		}
		printElements(k)
	case "oe2rv":
		k := mustKepler(origin)
		c, err := k.ToCartesian()
		if err != nil {
			fatal("conversion failed", err)
		}
		fmt.Println(c)
	case "kepler":
		k := mustKepler(origin)
		k1, err := celest.KeplerPropagate(k, origin.GM(), duration.Seconds(), conf.Solver)
		if err != nil {
			fatal("propagation failed", err)
		}
		printElements(k1)
	case "prop":
		tb := celest.NewTwoBody(mustCartesian(), origin, epoch, step)
		if err := tb.PropagateUntil(epoch.Add(duration)); err != nil {
			fatal("propagation failed", err)
		}
		writeStates(tb.Trajectory(), origin.GM())
	case "tle":
		n := int(duration/step) + 1
		traj, err := tle.Sample(tleLine1, tleLine2, epoch, step, n)
		if err != nil {
			fatal("sampling failed", err)
		}
		writeStates(traj, celest.Earth.GM())
	default:
		fatal("unknown mode", fmt.Errorf("%q", mode))
	}
}

func fatal(msg string, err error) {
	level.Error(logger).Log("subsys", "cli", "message", msg, "err", err)
	os.Exit(1)
}

func parseState() []float64 {
	fields := strings.Split(state, ",")
	vals := make([]float64, len(fields))
	for i, field := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			fatal("invalid state", err)
		}
		vals[i] = val
	}
	return vals
}

func mustCartesian() celest.CartesianElements {
	c, err := celest.NewCartesianElementsFromVector(parseState())
	if err != nil {
		fatal("invalid state", err)
	}
	return c
}

func mustKepler(origin *celest.CelestialObject) celest.KeplerElements {
	vals := parseState()
	if len(vals) == 6 {
		for i := 2; i < 6; i++ {
			vals[i] = celest.Deg2rad(vals[i])
		}
	}
	k, err := celest.NewKeplerElementsFromVector(vals, origin)
	if err != nil {
		fatal("invalid elements", err)
	}
	return k
}

func printElements(k celest.KeplerElements) {
	fmt.Println(k)
	if period, err := k.Period(); err == nil {
		fmt.Printf("period: %s\n", period)
	}
}

func writeStates(traj *celest.DiscreteTrajectory[celest.CartesianElements], μ float64) {
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := celest.CreateStatesFile(out)
		if err != nil {
			fatal("cannot create output", err)
		}
		defer f.Close()
		w = f
	}
	if err := celest.WriteStates(w, traj, μ); err != nil {
		fatal("cannot write states", err)
	}
	level.Info(logger).Log("subsys", "cli", "samples", traj.Len(), "out", out)
}
