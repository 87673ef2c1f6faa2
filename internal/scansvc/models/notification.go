package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is the persisted per-admin copy of a scan notice, stored in
// MongoDB with a TTL on expires_at.
type Notification struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID        int64              `bson:"admin_id" json:"admin_id"`
	Title          string             `bson:"title" json:"title"`
	Body           string             `bson:"body" json:"body"`
	Level          string             `bson:"level" json:"level"` // success | info | danger
	MemberUniqueId string             `bson:"member_unique_id,omitempty" json:"member_unique_id,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt      time.Time          `bson:"expires_at" json:"-"`
}
