package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errTransient = errors.New("transient")

type retryTransient struct{}

func (retryTransient) IsRetryable(err error) bool { return errors.Is(err, errTransient) }

func testWorkersConfig(queue int) config.Workers {
	return config.Workers{LastLoginWorkers: 2, LastLoginQueueSize: queue, LastLoginTimeout: time.Second}
}

// runDrained runs the recorder with an already cancelled context, so Run
// only drains what is queued and returns.
func runDrained(r *LastLoginRecorder) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Run(ctx)
}

func TestLastLoginRecorder_WritesQueuedUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	written := make(chan int64, 1)
	users.EXPECT().UpdateLastLogin(gomock.Any(), int64(7), at).DoAndReturn(
		func(ctx context.Context, userID int64, _ time.Time) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			written <- userID
			return nil
		},
	)

	r := NewLastLoginRecorder(users, nil, testWorkersConfig(8), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	r.Record(7, at)

	select {
	case id := <-written:
		assert.Equal(t, int64(7), id)
	case <-time.After(time.Second):
		t.Fatal("update was not written")
	}

	cancel()
	<-done
}

func TestLastLoginRecorder_DropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	r := NewLastLoginRecorder(users, nil, testWorkersConfig(1), logger.Nop())

	r.Record(1, time.Now())
	r.Record(2, time.Now())
	r.Record(3, time.Now())
	require.Equal(t, uint64(2), r.Dropped())

	users.EXPECT().UpdateLastLogin(gomock.Any(), int64(1), gomock.Any()).Return(nil).Times(1)
	runDrained(r)
}

func TestLastLoginRecorder_RetriesOnceWhenRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	gomock.InOrder(
		users.EXPECT().UpdateLastLogin(gomock.Any(), int64(1), gomock.Any()).Return(errTransient),
		users.EXPECT().UpdateLastLogin(gomock.Any(), int64(1), gomock.Any()).Return(nil),
	)

	r := NewLastLoginRecorder(users, retryTransient{}, testWorkersConfig(4), logger.Nop())
	r.Record(1, time.Now())
	runDrained(r)
}

func TestLastLoginRecorder_GivesUpAfterSecondFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	users.EXPECT().UpdateLastLogin(gomock.Any(), int64(1), gomock.Any()).Return(errTransient).Times(2)

	r := NewLastLoginRecorder(users, retryTransient{}, testWorkersConfig(4), logger.Nop())
	r.Record(1, time.Now())
	runDrained(r)
}

func TestLastLoginRecorder_NoRetryForPermanentError(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	users.EXPECT().UpdateLastLogin(gomock.Any(), int64(1), gomock.Any()).Return(errors.New("user not found")).Times(1)

	r := NewLastLoginRecorder(users, retryTransient{}, testWorkersConfig(4), logger.Nop())
	r.Record(1, time.Now())
	runDrained(r)
}

func TestLastLoginRecorder_DrainsOnShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(5)

	r := NewLastLoginRecorder(users, nil, testWorkersConfig(8), logger.Nop())
	for id := int64(1); id <= 5; id++ {
		r.Record(id, time.Now())
	}
	runDrained(r)

	assert.Zero(t, r.Dropped())
}
