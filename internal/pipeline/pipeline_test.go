package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		require.NotNil(t, p)
		assert.Empty(t, p.StepNames())
		assert.NotNil(t, p.logger)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		p := New(WithLogger(nil))

		assert.NotNil(t, p.logger)
	})
}

func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	assert.Equal(t, []string{"first", "second", "third"}, p.StepNames())
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		order := make([]string, 0)
		record := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *Run) error {
					order = append(order, name)
					return nil
				},
			}
		}

		p := New()
		p.AddSteps(record("step-1"), record("step-2"))

		run := NewRun("https://example.com/", model.ModeAuto)
		require.NoError(t, p.Execute(context.Background(), run))

		assert.Equal(t, []string{"step-1", "step-2"}, order)
		assert.Equal(t, []string{"step-1", "step-2"}, run.PerformedSteps)
		assert.NoError(t, run.Err)
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		failing := &mockStep{
			name: "failing",
			doFunc: func(_ context.Context, _ *Run) error {
				return expectedErr
			},
		}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		run := NewRun("https://example.com/", model.ModeAuto)
		err := p.Execute(context.Background(), run)

		require.ErrorIs(t, err, expectedErr)
		assert.ErrorIs(t, run.Err, expectedErr)
		assert.Equal(t, 0, after.callCount)
		assert.Empty(t, run.PerformedSteps)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run := NewRun("https://example.com/", model.ModeAuto)
		err := p.Execute(ctx, run)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, step.callCount)
	})
}

func TestNewRun(t *testing.T) {
	t.Parallel()

	a := NewRun("https://example.com/", model.ModeCluster)
	b := NewRun("https://example.com/", model.ModeCluster)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, model.StateIdle, a.State)
	assert.Equal(t, "https://example.com/", a.BaseURL())
}
