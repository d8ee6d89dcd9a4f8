package motion

import (
	"math"
	"testing"
)

func TestProfileSampleSinglePhase(t *testing.T) {
	// One pure acceleration phase: a=1, v0=0, 5 seconds.
	p := NewProfile(State{}, NewPhase(5, 1, 0))

	t.Run("mid-phase", func(t *testing.T) {
		got := p.Sample(4)
		if math.Abs(got.Position-8) > Tolerance {
			t.Errorf("Position at t=4: got %v, want 8", got.Position)
		}
		if math.Abs(got.Velocity-4) > Tolerance {
			t.Errorf("Velocity at t=4: got %v, want 4", got.Velocity)
		}
	})

	t.Run("negative time returns initial state", func(t *testing.T) {
		got := p.Sample(-1)
		if !got.Equal(State{}) {
			t.Errorf("Sample(-1) = %+v, want initial state", got)
		}
	})

	t.Run("total time", func(t *testing.T) {
		if p.TotalTime() != 5 {
			t.Errorf("TotalTime() = %v, want 5", p.TotalTime())
		}
	})
}

func TestProfileSampleBeyondEnd(t *testing.T) {
	// a=10, v0=10, 2 seconds: displacement 40, end velocity 30.
	p := NewProfile(State{}, NewPhase(2, 10, 10))

	got := p.Sample(5)
	if math.Abs(got.Position-40) > Tolerance {
		t.Errorf("Position beyond end: got %v, want 40", got.Position)
	}
	// Past the end the velocity is the final phase's end velocity,
	// not zero.
	if math.Abs(got.Velocity-30) > Tolerance {
		t.Errorf("Velocity beyond end: got %v, want 30", got.Velocity)
	}
}

func TestProfileSampleIdempotent(t *testing.T) {
	p := NewProfile(State{Position: 1, Velocity: 0.5},
		NewPhase(2, 1, 0.5),
		NewPhase(3, 0, 2.5),
		NewPhase(1, -1, 2.5),
	)

	for _, tm := range []float64{-1, 0, 0.7, 2, 4.2, 6, 100} {
		first := p.Sample(tm)
		for i := 0; i < 3; i++ {
			if got := p.Sample(tm); !got.Equal(first) {
				t.Fatalf("Sample(%v) changed between calls: %+v vs %+v", tm, got, first)
			}
		}
	}
}

func TestProfileDropsZeroDurationPhases(t *testing.T) {
	p := NewProfile(State{},
		NewPhase(0, 5, 0),
		NewPhase(2, 1, 0),
		NewPhase(-1, 3, 2),
	)

	if got := len(p.Phases()); got != 1 {
		t.Fatalf("kept %d phases, want 1", got)
	}
	if p.TotalTime() != 2 {
		t.Errorf("TotalTime() = %v, want 2", p.TotalTime())
	}
}

func TestProfileEmpty(t *testing.T) {
	p := NewProfile(State{Position: 3, Velocity: 0})

	if p.TotalTime() != 0 {
		t.Errorf("TotalTime() = %v, want 0", p.TotalTime())
	}
	if !p.IsFinished(0) {
		t.Error("empty profile should be finished at t=0")
	}
	if got := p.Sample(10); !got.Equal(State{Position: 3}) {
		t.Errorf("Sample(10) = %+v, want initial state", got)
	}
}

func TestProfileIsFinished(t *testing.T) {
	p := NewProfile(State{}, NewPhase(2, 1, 0))

	tests := []struct {
		t    float64
		want bool
	}{
		{0, false},
		{1.999, false},
		{2, true},
		{5, true},
	}
	for _, tt := range tests {
		if got := p.IsFinished(tt.t); got != tt.want {
			t.Errorf("IsFinished(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestProfileDuration(t *testing.T) {
	p := NewProfile(State{}, NewPhase(1.5, 1, 0))
	if got, want := p.Duration().Seconds(), 1.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("Duration() = %vs, want %vs", got, want)
	}
}

func TestProfileTimeLeftUntil(t *testing.T) {
	// Accelerate 1s to v=1, coast 3s, decelerate 1s: positions
	// 0 -> 0.5 -> 3.5 -> 4 over 5 seconds.
	p := NewProfile(State{},
		NewPhase(1, 1, 0),
		NewPhase(3, 0, 1),
		NewPhase(1, -1, 1),
	)

	tests := []struct {
		name     string
		position float64
		want     float64
	}{
		{"within accel phase", 0.25, math.Sqrt(0.5)},
		{"accel phase boundary", 0.5, 1},
		{"within coast", 2, 2.5},
		{"coast boundary", 3.5, 4},
		{"final position", 4, 5},
		{"behind start clamps to zero", -1, 0},
		{"at start", 0, 0},
		{"past end clamps to total time", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.TimeLeftUntil(tt.position)
			if math.Abs(got-tt.want) > Tolerance {
				t.Errorf("TimeLeftUntil(%v) = %v, want %v", tt.position, got, tt.want)
			}
		})
	}
}

func TestProfileTimeLeftUntilReverse(t *testing.T) {
	p := NewProfile(State{},
		NewPhase(1, -1, 0),
		NewPhase(3, 0, -1),
		NewPhase(1, 1, -1),
	)

	tests := []struct {
		position float64
		want     float64
	}{
		{-0.5, 1},
		{-2, 2.5},
		{-4, 5},
		{1, 0},
		{-10, 5},
	}
	for _, tt := range tests {
		got := p.TimeLeftUntil(tt.position)
		if math.Abs(got-tt.want) > Tolerance {
			t.Errorf("TimeLeftUntil(%v) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestProfileGenerate(t *testing.T) {
	p := NewProfile(State{},
		NewPhase(1, 1, 0),
		NewPhase(3, 0, 1),
		NewPhase(1, -1, 1),
	)

	t.Run("100Hz sampling", func(t *testing.T) {
		points := p.Generate(100)
		wantLen := int(math.Ceil(p.TotalTime()*100)) + 1
		if len(points) != wantLen {
			t.Fatalf("generated %d points, want %d", len(points), wantLen)
		}
		first, last := points[0], points[len(points)-1]
		if first.Position != 0 || first.Time != 0 {
			t.Errorf("first point = %+v, want origin", first)
		}
		if math.Abs(last.Position-4) > Tolerance {
			t.Errorf("last point position = %v, want 4", last.Position)
		}
		if math.Abs(last.Time-p.TotalTime()) > Tolerance {
			t.Errorf("last point time = %v, want %v", last.Time, p.TotalTime())
		}
	})

	t.Run("acceleration feedforward", func(t *testing.T) {
		points := p.Generate(10)
		if math.Abs(points[1].Acceleration-1) > Tolerance {
			t.Errorf("accel-phase acceleration = %v, want 1", points[1].Acceleration)
		}
		mid := points[len(points)/2]
		if math.Abs(mid.Acceleration) > Tolerance {
			t.Errorf("coast acceleration = %v, want 0", mid.Acceleration)
		}
	})

	t.Run("empty profile yields one point", func(t *testing.T) {
		points := NewProfile(State{Position: 7}).Generate(100)
		if len(points) != 1 {
			t.Fatalf("generated %d points, want 1", len(points))
		}
		if points[0].Position != 7 {
			t.Errorf("point position = %v, want 7", points[0].Position)
		}
	})
}

func BenchmarkProfileSample(b *testing.B) {
	p := NewProfile(State{},
		NewPhase(1, 1, 0),
		NewPhase(3, 0, 1),
		NewPhase(1, -1, 1),
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tm := float64(i%100) / 100.0 * p.TotalTime()
		p.Sample(tm)
	}
}
