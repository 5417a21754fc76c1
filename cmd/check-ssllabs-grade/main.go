package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-playground/validator/v10"
	corev2 "github.com/sensu/sensu-go/api/core/v2"
	"github.com/sensu/sensu-plugin-sdk/sensu"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nmollerup/sensu-check-ssllabs/ssllabs"
)

// Config represents the check plugin config.
type Config struct {
	sensu.PluginConfig
	Host           string
	MinGrade       string
	IgnoreTrust    bool
	AllowEmpty     bool
	ExpireDays     int
	Quiet          bool
	Publish        bool
	IgnoreMismatch bool
	Entrypoint     string
	Interval       int
	Debug          bool
}

var (
	plugin = Config{
		PluginConfig: sensu.PluginConfig{
			Name:     "check-ssllabs-grade",
			Short:    "SSL Labs grade check. For multi-endpoint hosts the worst grade of the cluster is used",
			Keyspace: "sensu.io/plugins/check-ssllabs-grade/config",
		},
	}

	options = []sensu.ConfigOption{
		&sensu.PluginConfigOption[string]{
			Path:      "hostname",
			Env:       "SSLLABS_HOSTNAME",
			Argument:  "hostname",
			Shorthand: "H",
			Default:   "",
			Usage:     "Host to assess",
			Value:     &plugin.Host,
		},
		&sensu.PluginConfigOption[string]{
			Path:      "grade",
			Env:       "SSLLABS_MIN_GRADE",
			Argument:  "grade",
			Shorthand: "g",
			Default:   string(ssllabs.GradeAPlus),
			Usage:     "The minimum acceptable grade",
			Value:     &plugin.MinGrade,
		},
		&sensu.PluginConfigOption[bool]{
			Path:      "ignore-trust",
			Argument:  "ignore-trust",
			Shorthand: "T",
			Default:   false,
			Usage:     "Use the grade the endpoints get when trust issues are ignored",
			Value:     &plugin.IgnoreTrust,
		},
		&sensu.PluginConfigOption[bool]{
			Path:      "allow-empty",
			Argument:  "allow-empty",
			Shorthand: "e",
			Default:   false,
			Usage:     "Pass an assessment without graded endpoints instead of failing it",
			Value:     &plugin.AllowEmpty,
		},
		&sensu.PluginConfigOption[int]{
			Path:      "expire-days",
			Argument:  "expire-days",
			Shorthand: "x",
			Default:   0,
			Usage:     "Fail when a certificate expires within this many days, 0 disables",
			Value:     &plugin.ExpireDays,
		},
		&sensu.PluginConfigOption[bool]{
			Path:      "",
			Argument:  "quiet",
			Shorthand: "q",
			Default:   false,
			Usage:     "Less output",
			Value:     &plugin.Quiet,
		},
		&sensu.PluginConfigOption[bool]{
			Path:      "publish",
			Argument:  "publish",
			Shorthand: "p",
			Default:   false,
			Usage:     "Publish the results on the public SSL Labs boards",
			Value:     &plugin.Publish,
		},
		&sensu.PluginConfigOption[bool]{
			Path:      "ignore-mismatch",
			Argument:  "ignore-mismatch",
			Shorthand: "m",
			Default:   false,
			Usage:     "Proceed with the assessment when the certificate does not match the hostname",
			Value:     &plugin.IgnoreMismatch,
		},
		&sensu.PluginConfigOption[string]{
			Path:     "entrypoint",
			Env:      "SSLLABS_ENTRYPOINT",
			Argument: "entrypoint",
			Default:  ssllabs.DefaultEntrypoint,
			Usage:    "SSL Labs API base URL",
			Value:    &plugin.Entrypoint,
		},
		&sensu.PluginConfigOption[int]{
			Path:      "interval",
			Argument:  "interval",
			Shorthand: "i",
			Default:   10,
			Usage:     "Seconds to wait between status polls",
			Value:     &plugin.Interval,
		},
		&sensu.PluginConfigOption[bool]{
			Path:     "",
			Argument: "debug",
			Default:  false,
			Usage:    "Log API requests to stderr",
			Value:    &plugin.Debug,
		},
	}
)

var (
	validate *validator.Validate
	logger   = zap.NewNop()
	minGrade ssllabs.Grade

	stdout io.Writer = os.Stdout
	now              = time.Now
)

func main() {
	validate = validator.New()

	check := sensu.NewCheck(&plugin.PluginConfig, options, checkArgs, executeCheck, false)
	check.Execute()
}

// initLogger sets up a console logger on stderr, keeping stdout for the
// check output.
func initLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func checkArgs(event *corev2.Event) (int, error) {
	if len(plugin.Host) == 0 {
		return sensu.CheckStateWarning, fmt.Errorf("--hostname is required")
	}
	if err := validate.Var(plugin.Host, "fqdn"); err != nil {
		return sensu.CheckStateWarning, fmt.Errorf("hostname is not a valid FQDN")
	}
	if err := validate.Var(plugin.Entrypoint, "required,url"); err != nil {
		return sensu.CheckStateWarning, fmt.Errorf("--entrypoint is not a valid URL")
	}
	if err := validate.Var(plugin.ExpireDays, "gte=0"); err != nil {
		return sensu.CheckStateWarning, fmt.Errorf("--expire-days cannot be negative")
	}
	if err := validate.Var(plugin.Interval, "gte=1"); err != nil {
		return sensu.CheckStateWarning, fmt.Errorf("--interval must be at least 1 second")
	}
	g, err := ssllabs.ParseGrade(plugin.MinGrade)
	if err != nil {
		return sensu.CheckStateWarning, fmt.Errorf("--grade must be one of %s", gradeList())
	}
	minGrade = g

	level := zapcore.InfoLevel
	switch {
	case plugin.Debug:
		level = zapcore.DebugLevel
	case plugin.Quiet:
		level = zapcore.WarnLevel
	}
	logger = initLogger(level)

	return sensu.CheckStateOK, nil
}

func executeCheck(event *corev2.Event) (int, error) {
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()
	client := ssllabs.NewClient(
		ssllabs.WithEntrypoint(plugin.Entrypoint),
		ssllabs.WithLogger(logger),
	)

	if !plugin.Quiet {
		info, err := client.Info(ctx)
		if err != nil {
			return sensu.CheckStateCritical, fmt.Errorf("fetching SSL Labs info: %w", err)
		}
		if len(info.Messages) > 0 {
			fmt.Fprintln(stdout, strings.Join(info.Messages, "\n"))
			fmt.Fprintln(stdout)
		}
	}

	var progress func(*ssllabs.Host)
	if !plugin.Quiet {
		progress = newProgressReporter(stdout).report
	}
	opts := ssllabs.AnalyzeOptions{Publish: plugin.Publish, IgnoreMismatch: plugin.IgnoreMismatch}
	wait := backoff.NewConstantBackOff(time.Duration(plugin.Interval) * time.Second)

	host, err := client.Analyze(ctx, plugin.Host, opts, wait, progress)
	if err != nil {
		return sensu.CheckStateCritical, err
	}
	if host.Status == ssllabs.StatusError && !plugin.Quiet {
		fmt.Fprintf(stdout, "assessment of %s failed: %s\n", plugin.Host, host.StatusMessage)
	}

	c := criteria{
		MinGrade:     minGrade,
		IgnoreTrust:  plugin.IgnoreTrust,
		AllowEmpty:   plugin.AllowEmpty,
		ExpireWithin: time.Duration(plugin.ExpireDays) * 24 * time.Hour,
	}
	v, err := evaluate(host, c, now())
	if err != nil {
		return sensu.CheckStateCritical, err
	}

	if !plugin.Quiet {
		printVerdict(v, c)
	}
	if !v.Pass() {
		return sensu.CheckStateWarning, nil
	}
	return sensu.CheckStateOK, nil
}

func printVerdict(v verdict, c criteria) {
	fmt.Fprintf(stdout, "Needed grade of %s, got grade of %s\n", c.MinGrade, v.Grade)
	if c.ExpireWithin == 0 {
		return
	}
	needed := int(c.ExpireWithin.Hours() / 24)
	if v.Expiry.IsZero() {
		fmt.Fprintf(stdout, "Needed expire time at least %d days away, no certificate expiry reported\n", needed)
		return
	}
	fmt.Fprintf(stdout, "Needed expire time at least %d days away, %d days left, expiring on %s\n",
		needed, int(math.Floor(v.TimeLeft.Hours()/24)), v.Expiry.Format(time.RFC1123))
}

func gradeList() string {
	names := make([]string, len(ssllabs.Grades))
	for i, g := range ssllabs.Grades {
		names[i] = g.String()
	}
	return strings.Join(names, ", ")
}
