package logger

import (
	"bytes"
	"context"
	"testing"

	kit "prodanalytics/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInit_Named_C(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Component:    "root",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-msg")
	Named("nps").Info().Msg("named-msg")

	ctx := WithChannel(WithRun(context.Background(), "run-1"), "email")
	C(ctx).Warn().Msg("ctx-msg")
	C(context.Background()).Info().Msg("bare-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, `"component":"nps"`)
	kit.MustContain(t, out, `"run_id":"run-1"`)
	kit.MustContain(t, out, `"channel":"email"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, "bare-msg")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "1")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Component != "cli" || !opt.WithCaller {
		t.Fatalf("FromEnv mismatch: %+v", opt)
	}
}

func TestWithRun_Empty(t *testing.T) {
	ctx := WithRun(context.Background(), "")
	if RunID(ctx) != "" {
		t.Fatalf("empty run id should not be stored")
	}
}
