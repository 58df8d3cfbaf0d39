package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPost_FindAndRemoveComment(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	p := &Post{Comments: []Comment{{ID: ids[0]}, {ID: ids[1]}, {ID: ids[2]}}}

	assert.Equal(t, 1, p.FindComment(ids[1]))
	assert.Equal(t, -1, p.FindComment(primitive.NewObjectID()))

	p.RemoveComment(1)
	assert.Equal(t, []Comment{{ID: ids[0]}, {ID: ids[2]}}, p.Comments)
	assert.Equal(t, -1, p.FindComment(ids[1]))
}

func TestPost_UserIDs(t *testing.T) {
	p := &Post{
		UserID: 1,
		Comments: []Comment{
			{UserID: 2, Replies: []Reply{{UserID: 1}, {UserID: 3}}},
			{UserID: 3},
		},
	}
	assert.Equal(t, []uint{1, 2, 3}, p.UserIDs())
}

func TestComment_Permissions(t *testing.T) {
	c := &Comment{UserID: 1}

	tests := []struct {
		name      string
		actor     AuthContext
		canEdit   bool
		canDelete bool
	}{
		{"author", AuthContext{UserID: 1}, true, true},
		{"author who is admin", AuthContext{UserID: 1, IsAdmin: true}, true, true},
		{"other user", AuthContext{UserID: 2}, false, false},
		{"administrator", AuthContext{UserID: 3, IsAdmin: true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canEdit, c.CanEdit(tt.actor))
			assert.Equal(t, tt.canDelete, c.CanDelete(tt.actor))
		})
	}
}

func TestAuthContext_IsSelfOrAdmin(t *testing.T) {
	assert.True(t, AuthContext{UserID: 5}.IsSelfOrAdmin(5))
	assert.False(t, AuthContext{UserID: 5}.IsSelfOrAdmin(6))
	assert.True(t, AuthContext{UserID: 1, IsAdmin: true}.IsSelfOrAdmin(6))
}
