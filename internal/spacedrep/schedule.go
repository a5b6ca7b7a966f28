package spacedrep

import "fmt"

// Entry is the revision state of one study item in a user's schedule.
type Entry struct {
	ItemID string `json:"item_id"`
	// RevisionCount counts accelerated (early) revisions. It indexes the
	// Fibonacci sequence and is not the number of RevisionDates.
	RevisionCount int `json:"revision_count"`
	// RevisionDates holds ISO calendar dates in non-decreasing order. The
	// last element is the next scheduled revision.
	RevisionDates []string `json:"revision_dates"`
	// LastRevised is the date of the most recent recorded revision.
	LastRevised string `json:"last_revised,omitempty"`
}

// LastDate returns the most recently scheduled revision date.
func (e Entry) LastDate() string {
	if len(e.RevisionDates) == 0 {
		return ""
	}
	return e.RevisionDates[len(e.RevisionDates)-1]
}

// ScheduledOn reports whether date appears among the entry's revision dates.
func (e Entry) ScheduledOn(date string) bool {
	for _, d := range e.RevisionDates {
		if d == date {
			return true
		}
	}
	return false
}

func (e Entry) clone() Entry {
	out := e
	out.RevisionDates = append([]string(nil), e.RevisionDates...)
	return out
}

// Schedule is the revision schedule owned by a single user.
//
// Schedule values are treated as immutable by the operations in this
// package: each returns an updated copy and leaves its input untouched.
// Persisting the result (and any concurrency control around it) is the
// caller's job; the store applies last-writer-wins.
type Schedule struct {
	UserID  string  `json:"user_id"`
	Entries []Entry `json:"entries"`
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := Schedule{UserID: s.UserID}
	if s.Entries != nil {
		out.Entries = make([]Entry, len(s.Entries))
		for i, e := range s.Entries {
			out.Entries[i] = e.clone()
		}
	}
	return out
}

// Entry returns the entry for itemID.
func (s Schedule) Entry(itemID string) (Entry, bool) {
	if i := s.indexOf(itemID); i >= 0 {
		return s.Entries[i].clone(), true
	}
	return Entry{}, false
}

// Len returns the number of scheduled items.
func (s Schedule) Len() int {
	return len(s.Entries)
}

func (s Schedule) indexOf(itemID string) int {
	for i, e := range s.Entries {
		if e.ItemID == itemID {
			return i
		}
	}
	return -1
}

// RecordRevision applies a revision of itemID on revisionDate.
//
// A first revision creates the entry with RevisionCount 1 and a single
// scheduled date one day out. Revising again on the last scheduled date, or
// on the date of the last recorded revision, is a no-op. Otherwise, revising earlier than the current Fibonacci gap
// increments RevisionCount before the next date is appended.
func RecordRevision(s Schedule, itemID, revisionDate string) (Schedule, error) {
	if itemID == "" {
		return s, fmt.Errorf("%w: empty item id", ErrInvalidArgument)
	}
	if _, err := ParseDate(revisionDate); err != nil {
		return s, err
	}

	out := s.Clone()
	i := out.indexOf(itemID)
	if i < 0 {
		gap, err := FibonacciInterval(1)
		if err != nil {
			return s, err
		}
		next, err := AddDays(revisionDate, gap)
		if err != nil {
			return s, err
		}
		out.Entries = append(out.Entries, Entry{
			ItemID:        itemID,
			RevisionCount: 1,
			RevisionDates: []string{next},
			LastRevised:   revisionDate,
		})
		return out, nil
	}

	e := &out.Entries[i]
	last := e.LastDate()
	if last == revisionDate || e.LastRevised == revisionDate {
		return s, nil
	}
	if last == "" {
		return s, fmt.Errorf("%w: item %q has no revision dates", ErrInvalidArgument, itemID)
	}
	if e.RevisionCount < 0 {
		return s, fmt.Errorf("%w: item %q has negative revision count %d", ErrInvalidArgument, itemID, e.RevisionCount)
	}

	elapsed, err := DaysBetween(last, revisionDate)
	if err != nil {
		return s, err
	}
	gap, err := FibonacciInterval(e.RevisionCount + 1)
	if err != nil {
		return s, err
	}
	if elapsed < gap {
		e.RevisionCount++
	}

	gap, err = FibonacciInterval(e.RevisionCount + 1)
	if err != nil {
		return s, err
	}
	next, err := AddDays(revisionDate, gap)
	if err != nil {
		return s, err
	}
	// Keep dates non-decreasing when the revision predates the last
	// scheduled date by more than the new gap.
	if next < last {
		next = last
	}
	e.RevisionDates = append(e.RevisionDates, next)
	e.LastRevised = revisionDate
	return out, nil
}

// RevisedFunc reports whether the item's content record shows a revision
// already made today. It lets ItemsDueToday consult data the schedule does
// not own.
type RevisedFunc func(itemID string) (bool, error)

// ItemsDueToday returns, in schedule order, the items whose revision dates
// include today, minus those revised reports as already revised. A nil
// revised excludes nothing.
func ItemsDueToday(s Schedule, today string, revised RevisedFunc) ([]string, error) {
	if _, err := ParseDate(today); err != nil {
		return nil, err
	}
	var due []string
	for _, e := range s.Entries {
		if !e.ScheduledOn(today) {
			continue
		}
		if revised != nil {
			done, err := revised(e.ItemID)
			if err != nil {
				return nil, fmt.Errorf("check revision of %q: %w", e.ItemID, err)
			}
			if done {
				continue
			}
		}
		due = append(due, e.ItemID)
	}
	return due, nil
}

// EnableScheduling opts itemID into revision scheduling, seeding it with
// RevisionCount 0 and today as its only date. Existing entries are left as is.
func EnableScheduling(s Schedule, itemID, today string) (Schedule, error) {
	if itemID == "" {
		return s, fmt.Errorf("%w: empty item id", ErrInvalidArgument)
	}
	if _, err := ParseDate(today); err != nil {
		return s, err
	}
	if s.indexOf(itemID) >= 0 {
		return s, nil
	}
	out := s.Clone()
	out.Entries = append(out.Entries, Entry{
		ItemID:        itemID,
		RevisionCount: 0,
		RevisionDates: []string{today},
	})
	return out, nil
}

// DisableScheduling removes itemID from the schedule if present.
func DisableScheduling(s Schedule, itemID string) Schedule {
	i := s.indexOf(itemID)
	if i < 0 {
		return s
	}
	out := s.Clone()
	out.Entries = append(out.Entries[:i], out.Entries[i+1:]...)
	return out
}
