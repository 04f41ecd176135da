package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"driveguard/internal/assessment"
	"driveguard/internal/assessment/ports/mocks"
	id "driveguard/pkg/domain"
)

type fakeRunner struct {
	mu       sync.Mutex
	checked  []id.DriverID
	triggers []string
	fail     map[id.DriverID]error

	inFlight      atomic.Int32
	maxInFlight   atomic.Int32
	checkDuration time.Duration
}

func (f *fakeRunner) RunCheck(_ context.Context, driverID id.DriverID, trigger string) (*assessment.RiskAssessment, error) {
	current := f.inFlight.Add(1)
	for {
		max := f.maxInFlight.Load()
		if current <= max || f.maxInFlight.CompareAndSwap(max, current) {
			break
		}
	}
	if f.checkDuration > 0 {
		time.Sleep(f.checkDuration)
	}
	f.inFlight.Add(-1)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked = append(f.checked, driverID)
	f.triggers = append(f.triggers, trigger)
	if err := f.fail[driverID]; err != nil {
		return nil, err
	}
	return &assessment.RiskAssessment{DriverID: driverID}, nil
}

func TestSweepRunsDueChecks(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockRecheckLister(ctrl)
	due := []id.DriverID{id.NewDriverID(), id.NewDriverID()}
	lister.EXPECT().ListDueForRecheck(gomock.Any(), gomock.Any(), defaultBatchSize).Return(due, nil)

	runner := &fakeRunner{}
	w := New(runner, lister, time.Hour, 2)
	w.sweep(context.Background())

	assert.ElementsMatch(t, due, runner.checked)
	for _, trigger := range runner.triggers {
		assert.Equal(t, TriggerRecheck, trigger)
	}
}

func TestSweepContinuesPastFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockRecheckLister(ctrl)
	failing := id.NewDriverID()
	healthy := id.NewDriverID()
	lister.EXPECT().ListDueForRecheck(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]id.DriverID{failing, healthy}, nil)

	runner := &fakeRunner{fail: map[id.DriverID]error{failing: errors.New("registry down")}}
	w := New(runner, lister, time.Hour, 1)
	w.sweep(context.Background())

	assert.ElementsMatch(t, []id.DriverID{failing, healthy}, runner.checked,
		"a failed check must not stop the rest of the batch")
}

func TestSweepBoundsConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockRecheckLister(ctrl)
	var due []id.DriverID
	for i := 0; i < 8; i++ {
		due = append(due, id.NewDriverID())
	}
	lister.EXPECT().ListDueForRecheck(gomock.Any(), gomock.Any(), gomock.Any()).Return(due, nil)

	runner := &fakeRunner{checkDuration: 10 * time.Millisecond}
	w := New(runner, lister, time.Hour, 2)
	w.sweep(context.Background())

	assert.LessOrEqual(t, runner.maxInFlight.Load(), int32(2))
	assert.Len(t, runner.checked, 8)
}

func TestSweepListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockRecheckLister(ctrl)
	lister.EXPECT().ListDueForRecheck(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	runner := &fakeRunner{}
	w := New(runner, lister, time.Hour, 2)
	w.sweep(context.Background())

	assert.Empty(t, runner.checked)
}

func TestWithBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockRecheckLister(ctrl)
	lister.EXPECT().ListDueForRecheck(gomock.Any(), gomock.Any(), 7).Return(nil, nil)

	w := New(&fakeRunner{}, lister, time.Hour, 2, WithBatchSize(7))
	w.sweep(context.Background())
}

func TestRunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockRecheckLister(ctrl)
	lister.EXPECT().ListDueForRecheck(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	w := New(&fakeRunner{}, lister, time.Millisecond, 1)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
