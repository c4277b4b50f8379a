package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives inside its discussion document and dies with it.
// The id is unique within the parent only.
type Comment struct {
	ID        string    `bson:"id" json:"id"`
	Content   string    `bson:"content" json:"content"`
	Email     string    `bson:"email" json:"email"`
	Username  string    `bson:"username" json:"username"`
	Likes     []string  `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type Discussion struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Slug     string             `bson:"slug" json:"slug"`
	// Username is the poster's display name, denormalized at creation.
	Username string             `bson:"username" json:"username"`
	GroupID  primitive.ObjectID `bson:"group" json:"group_id"`
	// Likes holds each liker's email at most once; mutations go through
	// $addToSet / $pull so the set property survives concurrent toggles.
	Likes     []string  `bson:"likes" json:"likes"`
	Comments  []Comment `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Comment returns the embedded comment with the given id, or nil.
func (d *Discussion) Comment(id string) *Comment {
	for i := range d.Comments {
		if d.Comments[i].ID == id {
			return &d.Comments[i]
		}
	}
	return nil
}

func (d *Discussion) HasLike(email string) bool {
	for _, e := range d.Likes {
		if e == email {
			return true
		}
	}
	return false
}
