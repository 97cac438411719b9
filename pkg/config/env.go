package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"
	EnvEnvFile  = "ENV_FILE"

	EnvAuthJWTSecret = "AUTH_JWT_SECRET"
	EnvAuthJWTIssuer = "AUTH_JWT_ISSUER"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookingLockTTL = "BOOKING_LOCK_TTL"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvKafkaBookingsTopic = "KAFKA_BOOKINGS_TOPIC"
	EnvKafkaEventsTopic   = "KAFKA_EVENTS_TOPIC"
	EnvKafkaDLQTopic      = "KAFKA_DLQ_TOPIC"
	EnvKafkaNotifierGroup = "KAFKA_NOTIFIER_GROUP"
)
