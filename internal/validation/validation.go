package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/habit-tracker/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingTitle       ConflictType = "missing_title"
	ConflictMissingQuestion    ConflictType = "missing_question"
	ConflictInvalidHabitType   ConflictType = "invalid_habit_type"
	ConflictUnexpectedEventIDs ConflictType = "unexpected_event_ids"
	ConflictBlankEventID       ConflictType = "blank_event_id"
	ConflictEmptyBatch         ConflictType = "empty_batch"
	ConflictInvalidHabitID     ConflictType = "invalid_habit_id"
	ConflictMissingEventID     ConflictType = "missing_event_id"
	ConflictDuplicateEventID   ConflictType = "duplicate_event_id"
	ConflictInvalidEventID     ConflictType = "invalid_event_id"
	ConflictDateOutOfRange     ConflictType = "date_out_of_range"
)

// Stored timestamps are RFC 3339 text, which only has room for four-digit years.
const (
	minYear = 0
	maxYear = 9999
)

func dateInRange(t time.Time) bool {
	y := t.UTC().Year()
	return y >= minYear && y <= maxYear
}

// Conflict represents a single rule a request breaks
type Conflict struct {
	Type        ConflictType
	Description string
	Index       int // position in a batch, -1 when not applicable
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Has reports whether a conflict of the given type was detected
func (vr ValidationResult) Has(ct ConflictType) bool {
	for _, c := range vr.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	descriptions := make([]string, 0, len(vr.Conflicts))
	for _, conflict := range vr.Conflicts {
		descriptions = append(descriptions, conflict.Description)
	}
	return strings.Join(descriptions, "; ")
}

func (vr *ValidationResult) add(ct ConflictType, index int, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        ct,
		Description: fmt.Sprintf(format, args...),
		Index:       index,
	})
}

// Validator checks write requests before they reach the store
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabit checks the mutable fields shared by create and update requests.
// Event ids only belong to calendar habits; a daily habit carrying them is rejected.
func (v *Validator) ValidateHabit(habitType models.HabitType, eventIDs []string, title, question string) ValidationResult {
	var result ValidationResult

	if !habitType.Valid() {
		result.add(ConflictInvalidHabitType, -1, "habit type %d is not one of Daily, AppleCalendar", int(habitType))
	}
	if strings.TrimSpace(title) == "" {
		result.add(ConflictMissingTitle, -1, "title must not be empty")
	}
	if strings.TrimSpace(question) == "" {
		result.add(ConflictMissingQuestion, -1, "question must not be empty")
	}
	if habitType == models.HabitTypeDaily && len(eventIDs) > 0 {
		result.add(ConflictUnexpectedEventIDs, -1, "daily habits cannot reference calendar events (got %d)", len(eventIDs))
	}
	for i, id := range eventIDs {
		if strings.TrimSpace(id) == "" {
			result.add(ConflictBlankEventID, i, "event id at position %d is blank", i)
		} else if !utf8.ValidString(id) {
			result.add(ConflictInvalidEventID, i, "event id at position %d is not valid UTF-8", i)
		}
	}

	return result
}

// ValidateCreate checks a create request
func (v *Validator) ValidateCreate(req models.CreateHabitRequest) ValidationResult {
	return v.ValidateHabit(req.HabitType, req.EventIDs, req.Title, req.Question)
}

// ValidateUpdate checks an update request
func (v *Validator) ValidateUpdate(req models.UpdateHabitRequest) ValidationResult {
	result := v.ValidateHabit(req.HabitType, req.EventIDs, req.Title, req.Question)
	if req.ID <= 0 {
		result.add(ConflictInvalidHabitID, -1, "habit id %d is not positive", req.ID)
	}
	return result
}

// ValidateEntries checks an entry batch. Whether each habit exists is left to
// the store's foreign key.
func (v *Validator) ValidateEntries(items []models.InsertHabitEntryItem) ValidationResult {
	var result ValidationResult

	if len(items) == 0 {
		result.add(ConflictEmptyBatch, -1, "entry batch is empty")
		return result
	}
	for i, item := range items {
		if item.HabitID <= 0 {
			result.add(ConflictInvalidHabitID, i, "entry %d: habit id %d is not positive", i, item.HabitID)
		}
		if item.Date != nil && !dateInRange(*item.Date) {
			result.add(ConflictDateOutOfRange, i, "entry %d: date year %d is outside %d-%d", i, item.Date.UTC().Year(), minYear, maxYear)
		}
	}

	return result
}

// ValidateCalendarEvents checks a replace-all batch. An empty batch is valid
// and clears the cache.
func (v *Validator) ValidateCalendarEvents(events []models.CalendarEvent) ValidationResult {
	var result ValidationResult

	seen := make(map[string]int, len(events))
	for i, ev := range events {
		if strings.TrimSpace(ev.ID) == "" {
			result.add(ConflictMissingEventID, i, "event %d has no id", i)
			continue
		}
		if !dateInRange(ev.StartDate) {
			result.add(ConflictDateOutOfRange, i, "event %d: start date year %d is outside %d-%d", i, ev.StartDate.UTC().Year(), minYear, maxYear)
		}
		if first, ok := seen[ev.ID]; ok {
			result.add(ConflictDuplicateEventID, i, "event %d repeats id %q from event %d", i, ev.ID, first)
			continue
		}
		seen[ev.ID] = i
	}

	return result
}
