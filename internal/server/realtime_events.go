package server

import (
	"context"
	"encoding/json"
	"log"

	"monkmode/internal/models"
	"monkmode/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventFriendRequestReceived = "friend_request_received"
	EventFriendRequestSent     = "friend_request_sent"
	EventFriendRequestAccepted = "friend_request_accepted"
	EventFriendAdded           = "friend_added"
	EventFriendRequestRejected = "friend_request_rejected"
	EventFriendRemoved         = "friend_removed"
	EventLevelUp               = "level_up"
)

// publishUserEvent delivers an event to the user's open sockets and to the
// Redis channel so other instances can do the same. Delivery is best-effort:
// failures are logged and never surfaced to the triggering request.
func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	ctx, span := observability.StartEventSpan(context.Background(), eventType, userID)
	defer span.End()

	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(ctx, userID, message); err != nil {
			observability.RecordError(ctx, err)
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func userSummary(user models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"level":    user.Level,
	}
}
