package server

import (
	"net/http"

	"github.com/julianstephens/lifetracker/internal/constants"
	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/models"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: constants.MessageRoot})
}

// pathDate reads the {date} path segment as a stored key. Text that is not a
// date matches nothing, or a stored value kept verbatim.
func pathDate(r *http.Request) dates.Date {
	return dates.FromStored(r.PathValue("date"))
}

// Journal entries

func (s *Server) handleCreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var in models.JournalEntryCreate
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := s.tracker.Journal.Create(r.Context(), in.Date, in.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListJournalEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tracker.Journal.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetJournalEntry(w http.ResponseWriter, r *http.Request) {
	date := pathDate(r)

	entry, found, err := s.tracker.Journal.GetByDate(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleUpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	date := pathDate(r)

	var in models.JournalEntryUpdate
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := s.tracker.Journal.Update(r.Context(), date, *in.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	date := pathDate(r)

	if err := s.tracker.Journal.Delete(r.Context(), date); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: constants.MessageJournalDeleted})
}

// Life tasks

func (s *Server) handleCreateLifeTask(w http.ResponseWriter, r *http.Request) {
	var in models.LifeTaskCreate
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := s.tracker.LifeTasks.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleListLifeTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tracker.LifeTasks.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleUpdateLifeTask(w http.ResponseWriter, r *http.Request) {
	var patch models.LifeTaskPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := s.tracker.LifeTasks.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteLifeTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.LifeTasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: constants.MessageTaskDeleted})
}

// Progress entries

func (s *Server) handleUpsertProgress(w http.ResponseWriter, r *http.Request) {
	var in models.ProgressEntryCreate
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := s.tracker.Progress.Upsert(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tracker.Progress.ListByTask(r.Context(), r.PathValue("task_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tracker.Progress.WeeklyWindow(r.Context(), r.PathValue("task_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Dashboard

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
