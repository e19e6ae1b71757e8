package profile

import "testing"

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	t.Parallel()

	p := Profiler{Path: t.TempDir()}
	stop := p.Start()

	if _, ok := stop.(ignore); !ok {
		t.Fatalf("expected no-op profiler, got %T", stop)
	}

	stop.Stop()
}

func TestProfiler_UnknownModeIsNoop(t *testing.T) {
	t.Parallel()

	p := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}
	stop := p.Start()

	if _, ok := stop.(ignore); !ok {
		t.Fatalf("expected no-op profiler, got %T", stop)
	}

	stop.Stop()
}
