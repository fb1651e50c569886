package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// TaskHandler handles task mutations and single-task reads.
type TaskHandler struct {
	tasks *service.TaskService
	guard *auth.Guard
	clock service.Clock
}

// NewTaskHandler creates a new TaskHandler. The clock decides which tasks
// are overdue and must match the one given to the board service; nil means
// service.SystemClock.
func NewTaskHandler(tasks *service.TaskService, guard *auth.Guard, clock service.Clock) *TaskHandler {
	if clock == nil {
		clock = service.SystemClock
	}
	return &TaskHandler{tasks: tasks, guard: guard, clock: clock}
}

func (h *TaskHandler) today() time.Time {
	return domain.Today(h.clock())
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireLogin(w, r, h.guard)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req, func() interface{} { return req }) {
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		RespondWithFormError(w, r, err, req)
		return
	}

	task, err := h.tasks.Create(r.Context(), id, fields)
	if err != nil {
		RespondWithFormError(w, r, err, req)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.MessageResponse{
		Message:  "Task added successfully!",
		Redirect: "/board",
		Data:     taskToResponse(task, h.today()),
	})
}

// Get handles GET /tasks/{id}, the data behind the edit form.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, taskID, ok := handleIdentityAndPathID(w, r, h.guard, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id, taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, h.today()))
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, taskID, ok := handleIdentityAndPathID(w, r, h.guard, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req, func() interface{} { return req }) {
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		RespondWithFormError(w, r, err, req)
		return
	}

	task, err := h.tasks.Update(r.Context(), id, taskID, fields)
	if err != nil {
		RespondWithFormError(w, r, err, req)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  "Task updated successfully!",
		Redirect: "/board",
		Data:     taskToResponse(task, h.today()),
	})
}

// Move handles POST /tasks/{id}/move. Moving to a bucket that does not
// exist succeeds without changing anything.
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, taskID, ok := handleIdentityAndPathID(w, r, h.guard, "id")
	if !ok {
		return
	}

	var req MoveRequest
	if !decodeAndValidate(w, r, &req, func() interface{} { return req }) {
		return
	}

	task, moved, err := h.tasks.Move(r.Context(), id, taskID, req.BucketID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := shared.MessageResponse{Redirect: "/board"}
	if moved {
		resp.Message = "Task moved successfully!"
		resp.Data = taskToResponse(task, h.today())
	} else {
		logger.FromContext(r.Context()).Debug("move target bucket missing",
			slog.Int64("task_id", taskID),
			slog.Int64("bucket_id", req.BucketID))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Toggle handles POST /tasks/{id}/toggle.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, taskID, ok := handleIdentityAndPathID(w, r, h.guard, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Toggle(r.Context(), id, taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	message := "Task marked as pending!"
	if task.Status == domain.StatusCompleted {
		message = "Task marked as completed!"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  message,
		Redirect: "/dashboard",
		Data:     taskToResponse(task, h.today()),
	})
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, taskID, ok := handleIdentityAndPathID(w, r, h.guard, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id, taskID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  "Task deleted successfully!",
		Redirect: "/dashboard",
	})
}
