// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"monkmode/internal/middleware"
	"monkmode/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests
// @Summary Send a friend request
// @Description Send a friend request to a user by username
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{username=string} true "Target username"
// @Success 201 {object} models.Friendship
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /friends/requests [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	// Resolve the handle; the engine re-checks existence by ID.
	target, err := s.userService.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	friendship, err := s.friendService.SendFriendRequest(ctx, userID, target.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	middleware.FriendshipTransitions.WithLabelValues("requested").Inc()

	// Notify both users so UI updates immediately.
	s.publishUserEvent(friendship.AddresseeID, EventFriendRequestReceived, map[string]interface{}{
		"request_id": friendship.ID,
		"from_user":  userSummary(friendship.Requester),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	s.publishUserEvent(friendship.RequesterID, EventFriendRequestSent, map[string]interface{}{
		"request_id": friendship.ID,
		"to_user":    userSummary(friendship.Addressee),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// GetIncomingRequests handles GET /api/friends/requests
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.ListIncoming(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// GetSentRequests handles GET /api/friends/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.ListOutgoing(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Param requestId path int true "Friend request ID"
// @Success 200 {object} models.Friendship
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /friends/requests/{requestId}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.AcceptFriendRequest(ctx, userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}
	middleware.FriendshipTransitions.WithLabelValues("accepted").Inc()

	s.publishUserEvent(friendship.RequesterID, EventFriendRequestAccepted, map[string]interface{}{
		"request_id":  friendship.ID,
		"friend_user": userSummary(friendship.Addressee),
		"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})
	s.publishUserEvent(friendship.AddresseeID, EventFriendAdded, map[string]interface{}{
		"request_id":  friendship.ID,
		"friend_user": userSummary(friendship.Requester),
		"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(friendship)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
// @Summary Reject a friend request
// @Tags friends
// @Produce json
// @Param requestId path int true "Friend request ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /friends/requests/{requestId}/reject [post]
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	// The service returns a snapshot of the deleted record for notification.
	friendship, err := s.friendService.RejectFriendRequest(ctx, userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}
	middleware.FriendshipTransitions.WithLabelValues("rejected").Inc()

	s.publishUserEvent(friendship.RequesterID, EventFriendRequestRejected, map[string]interface{}{
		"request_id":  friendship.ID,
		"by_user_id":  userID,
		"rejected_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.ListFriends(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if s.hub != nil {
		for i := range friends {
			friends[i].Online = s.hub.IsOnline(friends[i].FriendID)
		}
	}

	return c.JSON(friends)
}

// RemoveFriend handles DELETE /api/friends/:requestId
// @Summary Remove a friend
// @Tags friends
// @Param requestId path int true "Friendship ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{requestId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	friendshipID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	removed, err := s.friendService.RemoveFriend(ctx, userID, friendshipID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !removed {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Friendship", friendshipID))
	}
	middleware.FriendshipTransitions.WithLabelValues("removed").Inc()

	return c.SendStatus(fiber.StatusNoContent)
}
