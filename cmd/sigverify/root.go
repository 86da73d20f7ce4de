package main

import (
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/1F35C/signature-verifier/config"
	"github.com/1F35C/signature-verifier/constants"
	"github.com/1F35C/signature-verifier/internal/logger"
	"github.com/1F35C/signature-verifier/profile"
	"github.com/1F35C/signature-verifier/trustedkey"
	"github.com/1F35C/signature-verifier/verifier"
)

// errNotVerified makes the process exit with status 1 without printing an
// error; the result has already been rendered.
var errNotVerified = errors.New("sigverify: not verified")

type app struct {
	configPath string
	envFile    string
	logLevel   string
	jsonOutput bool

	cfg      *config.Config
	logger   *zap.Logger
	metrics  *verifier.Metrics
	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sigverify",
		Short: "Verify cleartext-signed release announcements",
		Long: `sigverify checks that a PGP cleartext-signed message carries a valid
signature from the embedded release signing key, and reports when the
message was signed and when the key was created.`,
		Version:           constants.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "path to a .env file, ignored when missing")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(newVerifyCmd(a))
	root.AddCommand(newArmorCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newKeyCmd(a))
	return root
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(err, "sigverify: unable to load env file")
		}
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	logger.Init(logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level, Version: constants.Version})
	a.logger = logger.Named("sigverify")

	a.metrics = verifier.NewMetrics()
	a.registry = prometheus.NewRegistry()
	return a.metrics.Register(a.registry)
}

func (a *app) teardown(_ *cobra.Command, _ []string) {
	if a.logger == nil {
		return
	}
	a.logMetrics()
	_ = logger.Sync()
}

func (a *app) engine() (*verifier.Engine, error) {
	key, err := trustedkey.Key()
	if err != nil {
		return nil, errors.Wrap(err, "sigverify: unable to load trusted key")
	}
	p, err := profile.ByName(a.cfg.Verify.Profile)
	if err != nil {
		return nil, err
	}
	return verifier.New(key,
		verifier.WithProfile(p),
		verifier.WithTimeout(a.cfg.Verify.Timeout),
		verifier.WithLogger(a.logger.Named("verifier")),
		verifier.WithMetrics(a.metrics),
	), nil
}

// logMetrics writes the verification counters at debug level.
func (a *app) logMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gathering metrics failed", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				fields = append(fields,
					zap.Uint64("count", m.GetHistogram().GetSampleCount()),
					zap.Float64("sum", m.GetHistogram().GetSampleSum()))
			}
			a.logger.Debug("metric", fields...)
		}
	}
}
