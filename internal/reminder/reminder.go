// Package reminder runs a daily job that tells users which scheduled
// items are due for revision.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/interleave/internal/spacedrep"
	"github.com/abhisek/interleave/internal/store"
)

// Reminder lists the items a user should revise on Date.
type Reminder struct {
	UserID  string
	Date    string
	ItemIDs []string
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders as structured log lines.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("items due for revision", "user", r.UserID, "date", r.Date, "count", len(r.ItemIDs), "items", r.ItemIDs)
	return nil
}

// Due returns the user's items scheduled for today that have not been
// revised yet today.
func Due(ctx context.Context, schedules store.ScheduleRepo, events store.EventRepo, userID, today string) ([]string, error) {
	sched, err := schedules.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return spacedrep.ItemsDueToday(sched, today, func(itemID string) (bool, error) {
		return events.RevisedOn(ctx, userID, itemID, today)
	})
}

// Options configures a Scheduler.
type Options struct {
	At       string // HH:MM, local to Location
	Location *time.Location
	Log      *slog.Logger
	Now      func() time.Time
}

// Scheduler runs the reminder check once a day.
type Scheduler struct {
	cron      *gocron.Scheduler
	schedules store.ScheduleRepo
	events    store.EventRepo
	notifier  Notifier
	opts      Options
}

// New creates a scheduler. Start must be called to run the daily job.
func New(schedules store.ScheduleRepo, events store.EventRepo, notifier Notifier, opts Options) *Scheduler {
	if opts.At == "" {
		opts.At = "08:00"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scheduler{
		cron:      gocron.NewScheduler(opts.Location),
		schedules: schedules,
		events:    events,
		notifier:  notifier,
		opts:      opts,
	}
}

// Start registers the daily job and starts the scheduler without blocking.
func (s *Scheduler) Start() error {
	_, err := s.cron.Every(1).Day().At(s.opts.At).SingletonMode().Do(s.runScheduled)
	if err != nil {
		return fmt.Errorf("schedule reminder at %s: %w", s.opts.At, err)
	}
	s.cron.StartAsync()
	return nil
}

// Stop terminates the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// NextRun returns when the daily job will next fire.
func (s *Scheduler) NextRun() time.Time {
	_, t := s.cron.NextRun()
	return t
}

// RunNow triggers every registered job immediately.
func (s *Scheduler) RunNow() {
	s.cron.RunAll()
}

func (s *Scheduler) runScheduled() {
	today := spacedrep.Today(s.opts.Now().In(s.opts.Location))
	if _, err := s.RunOnce(context.Background(), today); err != nil {
		s.opts.Log.Warn("reminder run failed", "date", today, "err", err)
	}
}

// RunOnce checks every user with a schedule and notifies those with items
// due on today. A failure for one user is logged and does not stop the
// others.
func (s *Scheduler) RunOnce(ctx context.Context, today string) ([]Reminder, error) {
	if _, err := spacedrep.ParseDate(today); err != nil {
		return nil, err
	}
	users, err := s.schedules.Users(ctx)
	if err != nil {
		return nil, err
	}

	var sent []Reminder
	for _, u := range users {
		items, err := Due(ctx, s.schedules, s.events, u, today)
		if err != nil {
			s.opts.Log.Warn("failed to compute due items", "user", u, "err", err)
			continue
		}
		if len(items) == 0 {
			continue
		}
		r := Reminder{UserID: u, Date: today, ItemIDs: items}
		if err := s.notifier.Notify(ctx, r); err != nil {
			s.opts.Log.Warn("failed to send reminder", "user", u, "err", err)
			continue
		}
		sent = append(sent, r)
	}
	s.opts.Log.Debug("reminder run complete", "date", today, "users", len(users), "notified", len(sent))
	return sent, nil
}
