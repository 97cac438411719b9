package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "campusconnect"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingLockTTL = 10 * time.Second

	DefaultKafkaEnabled       = false
	DefaultKafkaBookingsTopic = "campus.bookings"
	DefaultKafkaEventsTopic   = "campus.events"
	DefaultKafkaDLQTopic      = "campus.dlq"
	DefaultKafkaNotifierGroup = "campus-notifier"

	DefaultPaginationLimit = 100
)

// DefaultRooms is the fixed set of bookable campus rooms.
var DefaultRooms = []string{
	"Football pitch A",
	"Football Pitch B",
	"Red Hall",
	"Blue Hall",
	"Sdu Dorm",
	"WI-FI Zone",
	"I310–I311",
	"RED Coffee",
	"Library Meeting Room",
	"Student Center Hall",
}
