package model

import "time"

// BookingLock is an advisory lock over one (room, date) partition. Its _id is
// derived from the partition, so a second holder fails with a duplicate key.
// Token is unique per acquisition; only the holder that wrote it may release.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Room      string    `bson:"room" json:"room"`
	Date      string    `bson:"date" json:"date"`
	Owner     string    `bson:"owner" json:"owner"`
	Token     string    `bson:"token" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
