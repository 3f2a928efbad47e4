// Package feed holds the stateful feed controllers for skill posts, learning
// plans and progress entries. Each controller owns an in-memory item list,
// talks to the backend through the API client, and writes every resolved
// entity through to the shared store.
package feed

import (
	"errors"
	"strings"

	"edunity/internal/models"
)

// ErrNotFound is returned when an operation targets an item the controller no
// longer holds, typically after a concurrent delete or a destructive search.
var ErrNotFound = errors.New("feed: item not found")

// containsFold reports whether s contains term, case-insensitively.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// cloneLikes snapshots a like list so optimistic mutations can roll back to
// the exact pre-call state.
func cloneLikes(likes []models.Like) []models.Like {
	if likes == nil {
		return nil
	}
	out := make([]models.Like, len(likes))
	copy(out, likes)
	return out
}

// toggleLike flips the given user's membership in the like list and reports
// whether the result is a like (true) or an unlike (false).
func toggleLike(likes []models.Like, userID string, now models.Like) ([]models.Like, bool) {
	for i, l := range likes {
		if l.UserID == userID {
			return append(likes[:i:i], likes[i+1:]...), false
		}
	}
	return append(likes, now), true
}

// removeComment drops a comment by id, preserving order.
func removeComment(comments []models.Comment, commentID string) []models.Comment {
	for i, c := range comments {
		if c.ID == commentID {
			return append(comments[:i:i], comments[i+1:]...)
		}
	}
	return comments
}
