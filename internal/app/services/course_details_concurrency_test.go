package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// fetchBarrier releases callers only once `parties` of them are waiting, so
// fetches issued one after another never get past it.
type fetchBarrier struct {
	parties int
	timeout time.Duration

	mu      sync.Mutex
	arrived int
	release chan struct{}

	inflight atomic.Int32
	peak     atomic.Int32
	timedOut atomic.Bool
}

func newFetchBarrier(parties int, timeout time.Duration) *fetchBarrier {
	return &fetchBarrier{parties: parties, timeout: timeout, release: make(chan struct{})}
}

func (b *fetchBarrier) wait(ctx context.Context) error {
	n := b.inflight.Add(1)
	defer b.inflight.Add(-1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}

	b.mu.Lock()
	b.arrived++
	if b.arrived == b.parties {
		close(b.release)
	}
	b.mu.Unlock()

	select {
	case <-b.release:
		return nil
	case <-time.After(b.timeout):
		b.timedOut.Store(true)
		return errors.New("fetch barrier timed out")
	case <-ctx.Done():
		return ctx.Err()
	}
}

type barrierLessons struct {
	repositories.ILessonRepository
	b *fetchBarrier
}

func (r barrierLessons) ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	if err := r.b.wait(ctx); err != nil {
		return nil, err
	}
	return r.ILessonRepository.ListByModule(ctx, moduleID)
}

type barrierQuizzes struct {
	repositories.IQuizRepository
	b *fetchBarrier
}

func (r barrierQuizzes) ListByModule(ctx context.Context, moduleID int64) ([]models.Quiz, error) {
	if err := r.b.wait(ctx); err != nil {
		return nil, err
	}
	return r.IQuizRepository.ListByModule(ctx, moduleID)
}

type barrierAssignments struct {
	repositories.IAssignmentRepository
	b *fetchBarrier
}

func (r barrierAssignments) ListByModule(ctx context.Context, moduleID int64) ([]models.Assignment, error) {
	if err := r.b.wait(ctx); err != nil {
		return nil, err
	}
	return r.IAssignmentRepository.ListByModule(ctx, moduleID)
}

func seedTwoModules(t *testing.T, f *fixture) *models.Course {
	t.Helper()
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	for i, title := range []string{"One", "Two"} {
		m := f.module(t, c.ID, title, i+1)
		require.NoError(t, f.repos.Lesson.Create(ctx, &models.Lesson{ModuleID: m.ID, Title: "Lesson " + title, Position: 1}))
		f.quiz(t, m.ID, 10)
		f.assignment(t, m)
	}
	return c
}

func barrierDetailsService(f *fixture, b *fetchBarrier, limit int) CourseDetailsService {
	r := f.repos
	return NewCourseDetailsService(
		r.Course, r.Module,
		barrierLessons{r.Lesson, b}, barrierQuizzes{r.Quiz, b}, barrierAssignments{r.Assignment, b},
		r.Enrollment, limit, zerolog.Nop(),
	)
}

func TestCourseDetailsFetchesModuleContentConcurrently(t *testing.T) {
	f := newFixture(t)
	c := seedTwoModules(t, f)

	// two modules with three resources each, all of which must be in flight at once
	b := newFetchBarrier(6, 2*time.Second)
	svc := barrierDetailsService(f, b, 6)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	details, err := svc.GetCourseDetails(ctx, c.ID, f.instructor)
	require.NoError(t, err)

	assert.False(t, b.timedOut.Load(), "module content was fetched sequentially")
	assert.Equal(t, int32(6), b.peak.Load())
	require.Len(t, details.Modules, 2)
	for _, m := range details.Modules {
		assert.Len(t, m.Lessons, 1)
		assert.Len(t, m.Quizzes, 1)
		assert.Len(t, m.Assignments, 1)
	}
}

func TestCourseDetailsHonoursConcurrencyLimit(t *testing.T) {
	f := newFixture(t)
	c := seedTwoModules(t, f)

	// wider than the six fetches issued, so every fetch waits out the timeout
	b := newFetchBarrier(7, 50*time.Millisecond)
	svc := barrierDetailsService(f, b, 2)

	details, err := svc.GetCourseDetails(context.Background(), c.ID, f.instructor)
	require.NoError(t, err)

	assert.True(t, b.timedOut.Load())
	assert.LessOrEqual(t, b.peak.Load(), int32(2))
	for _, m := range details.Modules {
		assert.Empty(t, m.Lessons)
		assert.Empty(t, m.Quizzes)
		assert.Empty(t, m.Assignments)
	}
}
