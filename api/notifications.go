package api

import (
	"net/http"

	"github.com/stsysd/tasktrail/model"
)

// handleListNotifications は自分宛ての通知を新しい順に返すハンドラーです。
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	notifications, err := s.service.ListNotifications(r.Context(), actorID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(notifications))
}

// handleMarkNotificationRead は通知を既読にするハンドラーです。
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	notificationID, err := model.ParseID(r.PathValue("notification_id"), "notification_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.service.MarkNotificationRead(r.Context(), actorID, notificationID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, DetailResponse{Detail: "Notification marked as read."})
}
