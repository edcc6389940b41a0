package repl

import "sync"

// Executor runs async command tasks. It is an explicit dependency of the
// runner: either inject one with SetExecutor / RunnerBuilder.WithExecutor,
// or let the builder construct an owned WorkerPool.
type Executor interface {
	Submit(task func())
}

// WorkerPool is a fixed-size goroutine pool. Tasks submitted after Shutdown
// are dropped. Shutdown is best-effort: a task already running is not
// interrupted, it finishes on its own.
type WorkerPool struct {
	tasks chan func()
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewWorkerPool starts workers goroutines draining the task queue.
func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	p := &WorkerPool{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *WorkerPool) work() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case task := <-p.tasks:
			task()
		}
	}
}

// Submit enqueues a task. After Shutdown the task is silently dropped.
func (p *WorkerPool) Submit(task func()) {
	select {
	case <-p.quit:
	case p.tasks <- task:
	}
}

// Shutdown stops the workers without blocking. Queued tasks that no worker
// has picked up yet are discarded; in-flight tasks run to completion. It is
// safe to call from inside a task.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		close(p.quit)
	})
}

// Wait blocks until every worker has exited. Call after Shutdown.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

var _ Executor = (*WorkerPool)(nil)
