package server

import (
	"net/http"

	"github.com/julianstephens/lifetracker/internal/constants"
)

func (s *Server) routes(mux *http.ServeMux) {
	p := constants.APIPrefix

	mux.HandleFunc("GET "+p+"/{$}", s.handleRoot)

	mux.HandleFunc("POST "+p+"/journal-entries", s.handleCreateJournalEntry)
	mux.HandleFunc("GET "+p+"/journal-entries", s.handleListJournalEntries)
	mux.HandleFunc("GET "+p+"/journal-entries/{date}", s.handleGetJournalEntry)
	mux.HandleFunc("PUT "+p+"/journal-entries/{date}", s.handleUpdateJournalEntry)
	mux.HandleFunc("DELETE "+p+"/journal-entries/{date}", s.handleDeleteJournalEntry)

	mux.HandleFunc("POST "+p+"/life-tasks", s.handleCreateLifeTask)
	mux.HandleFunc("GET "+p+"/life-tasks", s.handleListLifeTasks)
	mux.HandleFunc("PUT "+p+"/life-tasks/{id}", s.handleUpdateLifeTask)
	mux.HandleFunc("DELETE "+p+"/life-tasks/{id}", s.handleDeleteLifeTask)

	mux.HandleFunc("POST "+p+"/progress-entries", s.handleUpsertProgress)
	mux.HandleFunc("GET "+p+"/progress-entries/{task_id}", s.handleListProgress)
	mux.HandleFunc("GET "+p+"/progress-entries/week/{task_id}", s.handleWeeklyProgress)

	mux.HandleFunc("GET "+p+"/stats/dashboard", s.handleDashboard)
}
