package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// AdminHandler serves the administration surface. Every endpoint re-reads
// the caller's role from storage before doing any work.
type AdminHandler struct {
	admin   *service.AdminService
	buckets *service.BucketService
	guard   *auth.Guard
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, buckets *service.BucketService, guard *auth.Guard) *AdminHandler {
	return &AdminHandler{admin: admin, buckets: buckets, guard: guard}
}

// View handles GET /admin.
func (h *AdminHandler) View(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.guard); !ok {
		return
	}

	view, err := h.admin.View(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, adminToResponse(view))
}

// DeleteUser handles DELETE /admin/users/{id}. The user's owned tasks go
// with them.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r, h.guard)
	if !ok {
		return
	}
	userID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	removed, err := h.admin.DeleteUser(r.Context(), admin, userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("admin deleted user",
		slog.Int64("admin_id", admin.UserID),
		slog.Int64("user_id", userID),
		slog.Int64("tasks_removed", removed))

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  "User and their tasks deleted successfully!",
		Redirect: "/admin",
		Data:     map[string]int64{"tasks_removed": removed},
	})
}

// DeleteTask handles DELETE /admin/tasks/{id}.
func (h *AdminHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r, h.guard)
	if !ok {
		return
	}
	taskID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.admin.DeleteTask(r.Context(), admin, taskID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  "Task deleted successfully!",
		Redirect: "/admin",
	})
}

// CreateBucket handles POST /admin/buckets.
func (h *AdminHandler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.guard); !ok {
		return
	}

	var req BucketRequest
	if !decodeAndValidate(w, r, &req, func() interface{} { return req }) {
		return
	}

	bucket, err := h.buckets.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		RespondWithFormError(w, r, err, req)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.MessageResponse{
		Message:  "Bucket created successfully!",
		Redirect: "/admin",
		Data:     bucket,
	})
}

// UpdateBucket handles PUT /admin/buckets/{id}.
func (h *AdminHandler) UpdateBucket(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.guard); !ok {
		return
	}
	bucketID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req BucketRequest
	if !decodeAndValidate(w, r, &req, func() interface{} { return req }) {
		return
	}

	bucket, err := h.buckets.Rename(r.Context(), bucketID, req.Name, req.Color)
	if err != nil {
		RespondWithFormError(w, r, err, req)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  "Bucket updated successfully!",
		Redirect: "/admin",
		Data:     bucket,
	})
}
