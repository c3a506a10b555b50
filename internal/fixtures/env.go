package fixtures

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Apurer/petstore-api-tests/internal/clients/http/petstore"
	"github.com/Apurer/petstore-api-tests/internal/config"
	"github.com/Apurer/petstore-api-tests/internal/petstoretest"
	"github.com/Apurer/petstore-api-tests/internal/platform/observability"
	"github.com/Apurer/petstore-api-tests/internal/validator"
)

// Env is what a petstore test receives before it runs.
type Env struct {
	Config    config.Config
	Logger    *slog.Logger
	Client    *petstore.Client
	Validator *validator.Validator
	// Fake is the in-process petstore, nil when running against a live target.
	Fake *petstoretest.Server
}

// EnvOption tunes the fake petstore started for the test.
type EnvOption func(*envOptions)

type envOptions struct {
	fake []petstoretest.Option
}

// WithFakeOptions forwards options to the fake petstore; ignored when live.
func WithFakeOptions(opts ...petstoretest.Option) EnvOption {
	return func(o *envOptions) {
		o.fake = append(o.fake, opts...)
	}
}

// NewEnv loads configuration, sets up the shared logger, and builds a client
// for the active target: BASE_URL when PETSTORE_LIVE is set, otherwise a fake
// petstore that lives as long as the test.
func NewEnv(t testing.TB, opts ...EnvOption) *Env {
	t.Helper()
	var o envOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg, err := config.LoadConfig(filepath.Join(ProjectRoot(t), ".env"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	logger := Logger(t, cfg)

	env := &Env{Config: cfg, Logger: logger, Validator: validator.New(logger)}
	baseURL := cfg.BaseURL
	if !cfg.Live {
		env.Fake = petstoretest.Start(t, o.fake...)
		baseURL = env.Fake.BaseURL()
	}
	client, err := petstore.NewFromConfig(cfg, petstore.WithBaseURL(baseURL), petstore.WithLogger(logger))
	if err != nil {
		t.Fatalf("build petstore client: %v", err)
	}
	env.Client = client
	return env
}

// Client is the short form of NewEnv(t).Client.
func Client(t testing.TB) *petstore.Client {
	t.Helper()
	return NewEnv(t).Client
}

// Target is the base URL the suite talks to for this test.
func Target(t testing.TB) string {
	t.Helper()
	return NewEnv(t).Client.BaseURL()
}

// Logger returns the process-wide suite logger, writing under the project
// root when the configured directory is relative.
func Logger(t testing.TB, cfg config.Config) *slog.Logger {
	t.Helper()
	dir := cfg.LogDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(ProjectRoot(t), dir)
	}
	logger, err := observability.SetupLogger(observability.LoggerConfig{
		Name:  cfg.LogName,
		Dir:   dir,
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
	})
	if err != nil {
		t.Fatalf("set up logger: %v", err)
	}
	return logger
}

// ProjectRoot walks up from this file to the module root.
func ProjectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for project paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
