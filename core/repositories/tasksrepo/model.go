package tasksrepo

import (
	"time"

	"github.com/jrazmi/tasktrack/sdk/validation"
)

// Field limits shared by every entry point that writes a task.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
)

// Status is where a task sits in its lifecycle. Any status may move to any
// other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid Status.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	return validation.OneOf(s, Statuses...)
}

// Priority ranks tasks for the owner.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid Priority.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return validation.OneOf(p, Priorities...)
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          string     `db:"id" bson:"_id"`
	UserID      string     `db:"user_id" bson:"user"`
	Title       string     `db:"title" bson:"title"`
	Description string     `db:"description" bson:"description"`
	Status      Status     `db:"status" bson:"status"`
	Priority    Priority   `db:"priority" bson:"priority"`
	DueDate     *time.Time `db:"due_date" bson:"dueDate"`
	Version     int        `db:"version" bson:"version"`
	CreatedAt   time.Time  `db:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" bson:"updatedAt"`
}

// CreateTask holds the caller-supplied fields of a new task. Missing status
// and priority take their defaults.
type CreateTask struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
}

// Validate checks every field and reports all failures at once.
func (c CreateTask) Validate() error {
	var fe validation.FieldErrors
	checkTitle(&fe, c.Title)
	checkDescription(&fe, c.Description)
	if c.Status != "" && !c.Status.Valid() {
		fe.Add("status", "Invalid status")
	}
	if c.Priority != "" && !c.Priority.Valid() {
		fe.Add("priority", "Invalid priority")
	}
	return fe.Err()
}

// Optional distinguishes an absent value from an explicit null.
//
//	Optional[T]{}                      absent: leave the field alone
//	Optional[T]{Set: true}             null:   clear the field
//	Optional[T]{Set: true, Value: &v}  value:  store v
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UpdateTask is a partial update. Nil pointers and unset Optionals leave the
// stored value unchanged.
type UpdateTask struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     Optional[time.Time]

	// ExpectedVersion, when set, makes the update conditional on the stored
	// version still matching.
	ExpectedVersion *int
}

// Empty reports whether u changes nothing.
func (u UpdateTask) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil && !u.DueDate.Set
}

// Validate runs the field rules for every field present in u.
func (u UpdateTask) Validate() error {
	var fe validation.FieldErrors
	if u.Title != nil {
		checkTitle(&fe, *u.Title)
	}
	if u.Description != nil {
		checkDescription(&fe, *u.Description)
	}
	if u.Status != nil && !u.Status.Valid() {
		fe.Add("status", "Invalid status")
	}
	if u.Priority != nil && !u.Priority.Valid() {
		fe.Add("priority", "Invalid priority")
	}
	return fe.Err()
}

// Apply returns t with the fields present in u copied over it.
func (u UpdateTask) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.DueDate.Set {
		t.DueDate = u.DueDate.Value
	}
	return t
}

func checkTitle(fe *validation.FieldErrors, title string) {
	switch {
	case !validation.NonBlank(title):
		fe.Add("title", "Title is required")
	case !validation.MaxLen(title, MaxTitleLen):
		fe.Add("title", "Title must be at most 200 characters")
	}
}

func checkDescription(fe *validation.FieldErrors, desc string) {
	if !validation.MaxLen(desc, MaxDescriptionLen) {
		fe.Add("description", "Description too long")
	}
}
