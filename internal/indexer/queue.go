package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/model"
)

// Task is one indexer fetch executed by the queue.
type Task func(ctx context.Context) (model.HistoryPage, error)

type outcome struct {
	page model.HistoryPage
	err  error
}

type request struct {
	ctx  context.Context
	task Task
	out  chan outcome
}

// Queue bounds indexer concurrency with a fixed pool of workers draining a
// submission channel. A request that keeps failing with a retryable code is
// retried by its worker up to maxRetry times, then fails terminally with
// CodeMaxRetry.
type Queue struct {
	submissions chan *request
	closed      chan struct{}
	once        sync.Once
	wg          sync.WaitGroup
	maxRetry    int
}

func NewQueue(workers, maxRetry int) *Queue {
	if workers <= 0 {
		workers = 2
	}
	if maxRetry < 0 {
		maxRetry = 0
	}
	q := &Queue{
		submissions: make(chan *request),
		closed:      make(chan struct{}),
		maxRetry:    maxRetry,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.closed:
			return
		case req := <-q.submissions:
			req.out <- q.run(req)
		}
	}
}

func (q *Queue) run(req *request) outcome {
	var lastErr error
	for attempt := 0; attempt <= q.maxRetry; attempt++ {
		if attempt > 0 {
			select {
			case <-req.ctx.Done():
				return outcome{err: clierrors.Wrap(clierrors.CodeUnavailable, "indexer request cancelled", req.ctx.Err())}
			case <-time.After(retryDelay(attempt)):
			}
		}
		page, err := req.task(req.ctx)
		if err == nil {
			return outcome{page: page}
		}
		if !retryable(err) {
			return outcome{err: err}
		}
		lastErr = err
	}
	return outcome{err: clierrors.Wrap(clierrors.CodeMaxRetry,
		fmt.Sprintf("indexer request failed after %d retries", q.maxRetry), lastErr)}
}

// Do submits a task and blocks until a worker has produced its result.
func (q *Queue) Do(ctx context.Context, task Task) (model.HistoryPage, error) {
	req := &request{ctx: ctx, task: task, out: make(chan outcome, 1)}
	select {
	case q.submissions <- req:
	case <-q.closed:
		return model.HistoryPage{}, clierrors.New(clierrors.CodeInternal, "indexer queue is closed")
	case <-ctx.Done():
		return model.HistoryPage{}, clierrors.Wrap(clierrors.CodeUnavailable, "indexer request cancelled", ctx.Err())
	}
	select {
	case res := <-req.out:
		return res.page, res.err
	case <-ctx.Done():
		return model.HistoryPage{}, clierrors.Wrap(clierrors.CodeUnavailable, "indexer request cancelled", ctx.Err())
	}
}

// Close stops accepting submissions and waits for in-flight work to finish.
// The submission channel itself is never closed, so a Do racing Close can
// only fall through to the closed sentinel, never panic on a dead channel.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.closed)
	})
	q.wg.Wait()
}

func retryable(err error) bool {
	cliErr, ok := clierrors.As(err)
	if !ok {
		return false
	}
	return cliErr.Code == clierrors.CodeUnavailable || cliErr.Code == clierrors.CodeRateLimited
}

func retryDelay(attempt int) time.Duration {
	d := 150 * time.Millisecond * time.Duration(attempt)
	if d > time.Second {
		d = time.Second
	}
	return d
}
