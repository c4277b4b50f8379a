package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// Member is embedded in a group; there is no standalone member collection.
// Identity data is copied in at join time and never refreshed afterwards.
type Member struct {
	ID    string `bson:"id" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
	Role  Role   `bson:"role" json:"role"`
}

type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Slug        string             `bson:"slug" json:"slug"` // derived from name once, never recomputed
	Creator     Member             `bson:"creator" json:"creator"`
	Members     []Member           `bson:"members" json:"members"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Categories a group can be filed under.
var Categories = []string{
	"Technology", "Sports", "Music", "Gaming", "Science",
	"Art", "Travel", "Food", "Health", "Other",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// HasMember reports whether any member carries the given email.
// Email is the comparison key for membership throughout.
func (g *Group) HasMember(email string) bool {
	for _, m := range g.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}

func (g *Group) IsCreator(email string) bool {
	return g.Creator.Email == email
}
