package cron

import (
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// Entry 一条定时任务：名称、cron 表达式（带秒）与任务本身
type Entry struct {
	Name string
	Spec string
	Job  cron.Job
}

type Manager struct {
	engine  *cron.Cron
	entries []Entry
}

func NewCronManager(entries ...Entry) *Manager {
	return &Manager{
		engine:  cron.New(cron.WithSeconds(), cron.WithLogger(slogLogger{})),
		entries: entries,
	}
}

// RegisterJobs 注册全部定时任务，上一轮未结束时跳过本轮
func (s *Manager) RegisterJobs() error {
	chain := cron.NewChain(cron.Recover(slogLogger{}), cron.SkipIfStillRunning(slogLogger{}))
	for _, e := range s.entries {
		if _, err := s.engine.AddJob(e.Spec, chain.Then(e.Job)); err != nil {
			return fmt.Errorf("register cron job %s: %w", e.Name, err)
		}
		log.Info("Cron job registered", "name", e.Name, "spec", e.Spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started", "jobs", len(s.entries))
	s.engine.Start()
}

// Stop 停止调度并等待正在运行的任务结束
func (s *Manager) Stop() {
	<-s.engine.Stop().Done()
	log.Info("Cron engine stopped")
}

// slogLogger 把 cron 内部日志转到 slog
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
