package tasksrepobridge

import (
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/sdk/validation"
)

// MarshalToBridge converts a core task to its wire shape.
func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     validation.FormatTimePtr(task.DueDate),
		User:        task.UserID,
		Version:     task.Version,
		CreatedAt:   validation.FormatTime(task.CreatedAt),
		UpdatedAt:   validation.FormatTime(task.UpdatedAt),
	}
}

// MarshalListToBridge converts a list of core models to bridge models
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts bridge create input to repository input.
// Input must already be validated.
func MarshalCreateToRepository(input CreateTaskInput) tasksrepo.CreateTask {
	return tasksrepo.CreateTask{
		Title:       input.Title,
		Description: input.Description,
		Status:      tasksrepo.Status(input.Status),
		Priority:    tasksrepo.Priority(input.Priority),
		DueDate:     parseDueDate(input.DueDate),
	}
}

// MarshalUpdateToRepository converts bridge update input to repository input.
// Input must already be validated.
func MarshalUpdateToRepository(input UpdateTaskInput) tasksrepo.UpdateTask {
	upd := tasksrepo.UpdateTask{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Status != nil {
		s := tasksrepo.Status(*input.Status)
		upd.Status = &s
	}
	if input.Priority != nil {
		p := tasksrepo.Priority(*input.Priority)
		upd.Priority = &p
	}
	if input.dueDateSet {
		upd.DueDate = tasksrepo.Optional[time.Time]{Set: true, Value: parseDueDate(input.DueDate)}
	}
	return upd
}

func parseDueDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := validation.ParseISODate(*s)
	if err != nil {
		return nil
	}
	return &t
}
