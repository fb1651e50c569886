package api

import (
	"net/http"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// BoardHandler serves the read-only projections: board, dashboard and the
// task form pickers.
type BoardHandler struct {
	board *service.BoardService
	guard *auth.Guard
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(board *service.BoardService, guard *auth.Guard) *BoardHandler {
	return &BoardHandler{board: board, guard: guard}
}

// Root handles GET /. It tells the client where to go.
func (h *BoardHandler) Root(w http.ResponseWriter, r *http.Request) {
	redirect := "/login"
	if !shared.IdentityFromContext(r.Context()).IsZero() {
		redirect = "/board"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"redirect": redirect})
}

// Health handles GET /health.
func (h *BoardHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Board handles GET /board.
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireLogin(w, r, h.guard); !ok {
		return
	}

	view, err := h.board.Board(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, boardToResponse(view))
}

// Dashboard handles GET /dashboard?status=&priority=&sort=. The older
// sort_by parameter is accepted too.
func (h *BoardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := requireLogin(w, r, h.guard)
	if !ok {
		return
	}

	q := r.URL.Query()
	sort := q.Get("sort")
	if sort == "" {
		sort = q.Get("sort_by")
	}
	query := domain.ParseDashboardQuery(q.Get("status"), q.Get("priority"), sort)

	view, err := h.board.Dashboard(r.Context(), id, query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, dashboardToResponse(view))
}

// FormOptions handles GET /tasks/options.
func (h *BoardHandler) FormOptions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireLogin(w, r, h.guard); !ok {
		return
	}

	opts, err := h.board.FormOptions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, opts)
}
