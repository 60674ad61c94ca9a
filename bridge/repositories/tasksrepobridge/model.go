package tasksrepobridge

import (
	"encoding/json"
	"strings"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/sdk/validation"
)

// Task is the wire shape of a task.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
	User        string  `json:"user"`
	Version     int     `json:"version"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateTaskInput is the POST /tasks body.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// Validate reports every failing field.
func (c CreateTaskInput) Validate() error {
	var fe validation.FieldErrors
	checkTitle(&fe, c.Title)
	checkDescription(&fe, c.Description)
	if c.Status != "" {
		checkStatus(&fe, c.Status)
	}
	if c.Priority != "" {
		checkPriority(&fe, c.Priority)
	}
	checkDueDate(&fe, c.DueDate)
	return fe.Err()
}

// UpdateTaskInput is the PUT /tasks/{id} body. Every field is optional;
// dueDate additionally distinguishes an explicit null (clear) from absence.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`

	dueDateSet bool
}

// Decode implements web.Decoder to track which keys were present.
func (u *UpdateTaskInput) Decode(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain UpdateTaskInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UpdateTaskInput(p)

	_, u.dueDateSet = raw["dueDate"]
	return nil
}

// Validate reports every failing field among those present.
func (u UpdateTaskInput) Validate() error {
	var fe validation.FieldErrors
	if u.Title != nil {
		checkTitle(&fe, *u.Title)
	}
	if u.Description != nil {
		checkDescription(&fe, *u.Description)
	}
	if u.Status != nil {
		checkStatus(&fe, *u.Status)
	}
	if u.Priority != nil {
		checkPriority(&fe, *u.Priority)
	}
	checkDueDate(&fe, u.DueDate)
	return fe.Err()
}

func checkTitle(fe *validation.FieldErrors, title string) {
	switch {
	case !validation.NonBlank(title):
		fe.Add("title", "Title is required")
	case !validation.MaxLen(strings.TrimSpace(title), tasksrepo.MaxTitleLen):
		fe.Add("title", "Title must be at most 200 characters")
	}
}

func checkDescription(fe *validation.FieldErrors, desc string) {
	if !validation.MaxLen(desc, tasksrepo.MaxDescriptionLen) {
		fe.Add("description", "Description too long")
	}
}

func checkStatus(fe *validation.FieldErrors, status string) {
	if !validation.OneOf(tasksrepo.Status(status), tasksrepo.Statuses...) {
		fe.Add("status", "Invalid status")
	}
}

func checkPriority(fe *validation.FieldErrors, priority string) {
	if !validation.OneOf(tasksrepo.Priority(priority), tasksrepo.Priorities...) {
		fe.Add("priority", "Invalid priority")
	}
}

func checkDueDate(fe *validation.FieldErrors, due *string) {
	if due != nil && !validation.ISODate(*due) {
		fe.Add("dueDate", "Invalid date format")
	}
}
