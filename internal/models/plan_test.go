package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicListParsing(t *testing.T) {
	tests := []struct {
		name   string
		topics string
		want   []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "Go", []string{"Go"}},
		{"trims and drops empties", " Go , , Docker ,Kubernetes", []string{"Go", "Docker", "Kubernetes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := LearningPlan{Topics: tt.topics}
			assert.Equal(t, tt.want, plan.TopicList())
		})
	}
}

func TestResourceListFlagsLinks(t *testing.T) {
	plan := LearningPlan{Resources: "https://go.dev/tour, The Go Programming Language, http://example.com/course"}

	resources := plan.ResourceList()
	assert.Len(t, resources, 3)
	assert.True(t, resources[0].IsLink)
	assert.False(t, resources[1].IsLink)
	assert.True(t, resources[2].IsLink)
	assert.Equal(t, "The Go Programming Language", resources[1].Value)
}

func TestLikedBy(t *testing.T) {
	likes := []Like{{UserID: "u1"}, {UserID: "u2"}}

	assert.True(t, LikedBy(likes, "u1"))
	assert.False(t, LikedBy(likes, "u3"))
	assert.False(t, LikedBy(nil, "u1"))
}

func TestNotificationTarget(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want string
	}{
		{"comment", Notification{Type: "comment", RelatedPostID: "p1"}, "/comments/p1"},
		{"like", Notification{Type: "like", RelatedPostID: "p2"}, "/posts/p2"},
		{"uppercase type", Notification{Type: "LIKE", RelatedPostID: "p3"}, "/posts/p3"},
		{"no related post", Notification{Type: "like"}, ""},
		{"unknown type", Notification{Type: "mention", RelatedPostID: "p4"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Target())
		})
	}
}
