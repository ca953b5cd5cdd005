package plugin

import (
	"context"
	"sync"
	"time"
)

// TaskFunc 주기 작업 본문
type TaskFunc func(ctx context.Context) error

// ScheduledTask 등록된 주기 작업
type ScheduledTask struct {
	Name      string
	Owner     string // 등록한 플러그인 (코어 작업은 "core")
	Interval  time.Duration
	Run       TaskFunc
	LastRun   time.Time
	NextRun   time.Time
	RunCount  int64
	LastError error
}

// Scheduler 프로세스 내 주기 작업 실행기 (세션 정리, DB 통계 수집 등)
type Scheduler struct {
	tasks      []*ScheduledTask
	mu         sync.Mutex
	logger     Logger
	resolution time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	now        func() time.Time
}

// NewScheduler 생성자. resolution은 실행 대상 확인 주기 (0이면 1초).
func NewScheduler(logger Logger, resolution time.Duration) *Scheduler {
	if resolution <= 0 {
		resolution = time.Second
	}
	return &Scheduler{
		logger:     logger,
		resolution: resolution,
		stop:       make(chan struct{}),
		now:        time.Now,
	}
}

// Register 주기 작업 등록. 첫 실행은 interval 후.
func (s *Scheduler) Register(owner, name string, interval time.Duration, run TaskFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, &ScheduledTask{
		Name:     name,
		Owner:    owner,
		Interval: interval,
		Run:      run,
		NextRun:  s.now().Add(interval),
	})
	s.logger.Info("Scheduled task registered: %s/%s (every %s)", owner, name, interval)
}

// Unregister owner의 모든 작업 해제
func (s *Scheduler) Unregister(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Owner != owner {
			filtered = append(filtered, t)
		}
	}
	s.tasks = filtered
}

// Start 백그라운드 실행 시작
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.resolution)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.tick(s.now())
			}
		}
	}()
	s.logger.Info("Scheduler started")
}

// Stop 실행 중인 작업이 끝날 때까지 기다린 뒤 중지 (여러 번 호출해도 안전)
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
		s.logger.Info("Scheduler stopped")
	})
}

// tick 실행 시점이 된 작업을 순서대로 실행
func (s *Scheduler) tick(now time.Time) {
	s.mu.Lock()
	due := make([]*ScheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !now.Before(t.NextRun) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, task := range due {
		ctx, cancel := context.WithTimeout(context.Background(), task.Interval)
		err := task.Run(ctx)
		cancel()
		if err != nil {
			s.logger.Error("Scheduled task error [%s/%s]: %v", task.Owner, task.Name, err)
		}

		s.mu.Lock()
		task.LastError = err
		task.LastRun = now
		task.NextRun = now.Add(task.Interval)
		task.RunCount++
		s.mu.Unlock()
	}
}

// Tasks 등록된 작업 목록 (모니터링용)
func (s *Scheduler) Tasks() []ScheduledTaskInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]ScheduledTaskInfo, 0, len(s.tasks))
	for _, t := range s.tasks {
		info := ScheduledTaskInfo{
			Name:     t.Name,
			Owner:    t.Owner,
			Interval: t.Interval.String(),
			LastRun:  t.LastRun,
			NextRun:  t.NextRun,
			RunCount: t.RunCount,
		}
		if t.LastError != nil {
			msg := t.LastError.Error()
			info.LastError = &msg
		}
		result = append(result, info)
	}
	return result
}

// ScheduledTaskInfo 작업 정보 (JSON 응답용)
type ScheduledTaskInfo struct {
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Interval  string    `json:"interval"`
	LastRun   time.Time `json:"last_run"`
	NextRun   time.Time `json:"next_run"`
	RunCount  int64     `json:"run_count"`
	LastError *string   `json:"last_error,omitempty"`
}
