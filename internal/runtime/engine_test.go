package runtime_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, e *runtime.Engine, input string, opts ...runtime.RunOption) ([]domain.Configuration, error) {
	t.Helper()
	var configs []domain.Configuration
	for cfg, err := range e.Run(context.Background(), input, opts...) {
		if err != nil {
			return configs, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func TestEngine_Run_ZerosOnes(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())

	tests := []struct {
		name       string
		input      string
		wantAccept bool
		wantSteps  int
		rejectAt   *domain.RejectionError
	}{
		{name: "01 accepted", input: "01", wantAccept: true, wantSteps: 5},
		{name: "0011 accepted", input: "0011", wantAccept: true, wantSteps: 13},
		{name: "empty accepted on blank", input: "", wantAccept: true, wantSteps: 1},
		{name: "0 rejected on blank", input: "0", wantSteps: 1, rejectAt: &domain.RejectionError{State: "q1", Symbol: ".", Step: 2}},
		{name: "10 rejected immediately", input: "10", wantSteps: 0, rejectAt: &domain.RejectionError{State: "q0", Symbol: "1", Step: 1}},
		{name: "001 rejected", input: "001", wantSteps: 7, rejectAt: &domain.RejectionError{State: "q1", Symbol: ".", Step: 8}},
		{name: "011 rejected", input: "011", wantSteps: 4, rejectAt: &domain.RejectionError{State: "q3", Symbol: "1", Step: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs, err := collect(t, engine, tt.input)
			require.NotEmpty(t, configs)

			first := configs[0]
			assert.Equal(t, domain.State("q0"), first.State)
			assert.False(t, engine.IsFinal(first))
			if tt.input != "" {
				assert.Equal(t, tt.input, first.Tape.Content())
			}
			assert.Equal(t, 0, first.Tape.Head())

			assert.Len(t, configs, tt.wantSteps+1)

			if tt.wantAccept {
				require.NoError(t, err)
				assert.True(t, engine.IsFinal(configs[len(configs)-1]))
				return
			}

			var rej *domain.RejectionError
			require.ErrorAs(t, err, &rej)
			assert.ErrorIs(t, err, domain.ErrRejected)
			assert.Equal(t, tt.rejectAt, rej)
			assert.False(t, engine.IsFinal(configs[len(configs)-1]))
		})
	}
}

func TestEngine_Run_Trace01(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())
	configs, err := collect(t, engine, "01")
	require.NoError(t, err)

	want := []struct {
		state   domain.State
		content string
		head    int
	}{
		{"q0", "01", 0},
		{"q1", "x1", 1},
		{"q2", "xy", 0},
		{"q3", "xy", 1},
		{"q3", "xy.", 2},
		{"q4", "xy.", 2},
	}
	require.Len(t, configs, len(want))
	for i, w := range want {
		assert.Equal(t, w.state, configs[i].State, "config %d", i)
		assert.Equal(t, w.content, configs[i].Tape.Content(), "config %d", i)
		assert.Equal(t, w.head, configs[i].Tape.Head(), "config %d", i)
	}
}

func TestEngine_Run_Deterministic(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())
	for _, input := range []string{"", "01", "000111", "0010", "1"} {
		a, errA := collect(t, engine, input)
		b, errB := collect(t, engine, input)
		require.Len(t, b, len(a), input)
		for i := range a {
			assert.True(t, a[i].Equal(b[i]), "input %q config %d: %s != %s", input, i, a[i], b[i])
		}
		assert.Equal(t, errA, errB)
	}
}

func TestEngine_Run_SequenceIsReusable(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())
	seq := engine.Run(context.Background(), "0011")

	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, count(), count())
}

func TestEngine_Run_PriorConfigurationsStayValid(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())
	configs, err := collect(t, engine, "0011")
	require.NoError(t, err)

	// The initial snapshot is untouched by every later write.
	assert.Equal(t, "0011", configs[0].Tape.Content())
	assert.Equal(t, "x011", configs[1].Tape.Content())
}

func TestEngine_Run_StepLimit(t *testing.T) {
	engine := runtime.NewEngine(testutils.Looper())

	configs, err := collect(t, engine, "aa", runtime.WithMaxSteps(10))
	var limit *domain.StepLimitError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 10, limit.Limit)
	assert.ErrorIs(t, err, domain.ErrStepLimit)
	assert.Len(t, configs, 11)

	// A generous bound does not change a halting run.
	zo := runtime.NewEngine(testutils.ZerosOnes())
	configs, err = collect(t, zo, "01", runtime.WithMaxSteps(5))
	require.NoError(t, err)
	assert.Len(t, configs, 6)
}

func TestEngine_Run_StepLimitFiresRejectHook(t *testing.T) {
	var halts []*domain.HaltEvent
	engine := runtime.NewEngine(testutils.Looper(), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnReject: func(_ context.Context, e *domain.HaltEvent) { halts = append(halts, e) },
	}))

	_, err := collect(t, engine, "a", runtime.WithMaxSteps(4))
	require.ErrorIs(t, err, domain.ErrStepLimit)

	require.Len(t, halts, 1)
	assert.Equal(t, domain.OutcomeStepLimit, halts[0].Outcome)
	assert.Equal(t, 4, halts[0].Steps)
	assert.Equal(t, domain.State("s"), halts[0].Configuration.State)
	assert.Contains(t, halts[0].Reason, "4 steps")
}

func TestEngine_Run_UnboundedLoopCanBeAbandoned(t *testing.T) {
	engine := runtime.NewEngine(testutils.Looper())
	n := 0
	for _, err := range engine.Run(context.Background(), "a") {
		require.NoError(t, err)
		n++
		if n == 1000 {
			break
		}
	}
	assert.Equal(t, 1000, n)
}

func TestEngine_Run_Cancel(t *testing.T) {
	engine := runtime.NewEngine(testutils.Looper())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	var lastErr error
	for _, err := range engine.Run(ctx, "a") {
		if err != nil {
			lastErr = err
			break
		}
		n++
		if n == 3 {
			cancel()
		}
	}
	assert.ErrorIs(t, lastErr, context.Canceled)
	assert.Equal(t, 3, n)
}

func TestEngine_Step(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())

	start := engine.Start("01")
	res := engine.Step(start)
	assert.Equal(t, runtime.Continue, res.Outcome)
	assert.Equal(t, domain.Symbol("0"), res.Read)
	assert.Equal(t, domain.State("q1"), res.Configuration.State)
	assert.Equal(t, "01", start.Tape.Content(), "step must not mutate its input")

	final := domain.NewConfiguration("q4", domain.NewTape("", "."))
	res = engine.Step(final)
	assert.Equal(t, runtime.Accept, res.Outcome)
	assert.True(t, res.Configuration.Equal(final))

	stuck := domain.NewConfiguration("q0", domain.NewTape("1", "."))
	res = engine.Step(stuck)
	assert.Equal(t, runtime.Reject, res.Outcome)
	require.NotNil(t, res.Rejection)
	assert.Equal(t, domain.Symbol("1"), res.Rejection.Symbol)
}

func TestEngine_NoMoveKeepsHead(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())
	res := engine.Step(engine.Start(""))
	assert.Equal(t, runtime.Accept, res.Outcome)
	assert.Equal(t, 0, res.Configuration.Tape.Head())
	assert.Equal(t, ".", res.Configuration.Tape.Content())
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var started, steps, accepted, rejected int
	var lastHalt *domain.HaltEvent
	hooks := domain.LifecycleHooks{
		OnStart:  func(ctx context.Context, e *domain.RunEvent) { started++ },
		OnStep:   func(ctx context.Context, e *domain.StepEvent) { steps++ },
		OnAccept: func(ctx context.Context, e *domain.HaltEvent) { accepted++; lastHalt = e },
		OnReject: func(ctx context.Context, e *domain.HaltEvent) { rejected++; lastHalt = e },
	}
	engine := runtime.NewEngine(testutils.ZerosOnes(), runtime.WithLifecycleHooks(hooks))

	_, err := collect(t, engine, "01")
	require.NoError(t, err)
	assert.Equal(t, 1, started)
	assert.Equal(t, 5, steps)
	assert.Equal(t, 1, accepted)
	require.NotNil(t, lastHalt)
	assert.Equal(t, domain.OutcomeAccepted, lastHalt.Outcome)
	assert.Equal(t, 5, lastHalt.Steps)
	assert.Equal(t, "zeros-ones", lastHalt.Machine)

	_, err = collect(t, engine, "10")
	require.Error(t, err)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, domain.OutcomeRejected, lastHalt.Outcome)
	assert.Equal(t, 0, lastHalt.Steps)
}

func TestEngine_ConcurrentRuns(t *testing.T) {
	engine := runtime.NewEngine(testutils.ZerosOnes())
	inputs := []string{"", "01", "0011", "000111", "0", "10", "0101"}
	want := make(map[string]int)
	for _, in := range inputs {
		configs, _ := collect(t, engine, in)
		want[in] = len(configs)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for _, in := range inputs {
			wg.Add(1)
			go func(in string) {
				defer wg.Done()
				n := 0
				for _, err := range engine.Run(context.Background(), in) {
					if err != nil {
						break
					}
					n++
				}
				assert.Equal(t, want[in], n, in)
			}(in)
		}
	}
	wg.Wait()
}

func TestNewEngine_CopiesDefinition(t *testing.T) {
	def := testutils.ZerosOnes()
	engine := runtime.NewEngine(def)
	delete(def.Transitions, "q0")

	configs, err := collect(t, engine, "01")
	require.NoError(t, err)
	assert.Len(t, configs, 6)
}
