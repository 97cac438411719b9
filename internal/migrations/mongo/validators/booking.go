package validators

import "go.mongodb.org/mongo-driver/bson"

const (
	datePattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`
	timePattern = `^([01][0-9]|2[0-3]):[0-5][0-9]$`
)

// Booking restricts room to the configured set so a stale client cannot
// book a room that no longer exists.
func Booking(rooms []string) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{
				"room",
				"date",
				"time",
				"event_name",
				"user_id",
				"created_at",
			},
			"additionalProperties": true,

			"properties": bson.M{
				"_id": bson.M{
					"bsonType": "objectId",
				},

				"room": bson.M{
					"bsonType": "string",
					"enum":     rooms,
				},

				"date": bson.M{
					"bsonType": "string",
					"pattern":  datePattern,
				},

				"time": bson.M{
					"bsonType": "string",
					"pattern":  timePattern,
				},

				"event_name": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 120,
				},

				"user_id": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 128,
				},

				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "room", "date", "token", "expires_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},
			"room": bson.M{
				"bsonType": "string",
			},
			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},
			"owner": bson.M{
				"bsonType": "string",
			},
			"token": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"expires_at": bson.M{
				"bsonType": "date",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
