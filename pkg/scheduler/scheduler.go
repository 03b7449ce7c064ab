package scheduler

import (
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task 一个周期任务
type Task struct {
	Name     string
	Interval time.Duration
	Run      func()
}

// Scheduler 进程内周期任务调度器。每个任务独立goroutine驱动，
// 同一任务不会重叠执行（执行期间到达的tick被丢弃），不同任务互不阻塞。
type Scheduler struct {
	log   *zap.Logger
	tasks []Task

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		log:    log,
		stopCh: make(chan struct{}),
	}
}

// Register 注册任务，必须在Start之前调用
func (s *Scheduler) Register(name string, interval time.Duration, run func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		s.log.Warn("task registered after scheduler start, ignored", zap.String("task", name))
		return
	}
	s.tasks = append(s.tasks, Task{Name: name, Interval: interval, Run: run})
}

// Start 启动所有已注册任务
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(t)
		s.log.Info("scheduled task started",
			zap.String("task", t.Name),
			zap.Duration("interval", t.Interval))
	}
}

func (s *Scheduler) loop(t Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.safeRun(t)
		case <-s.stopCh:
			return
		}
	}
}

// safeRun 执行一次任务，panic只终止本次执行不杀死循环
func (s *Scheduler) safeRun(t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scheduled task panicked",
				zap.String("task", t.Name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	t.Run()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}
