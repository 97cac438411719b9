package validators

import "go.mongodb.org/mongo-driver/bson"

var EventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"date",
			"time",
			"location",
			"created_by",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},
			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},
			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 2000,
			},
			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},
			"time": bson.M{
				"bsonType": "string",
				"pattern":  timePattern,
			},
			"location": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},
			"created_by": bson.M{
				"bsonType": "string",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
