package validators

import "go.mongodb.org/mongo-driver/bson"

var LostFoundValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"item_name",
			"description",
			"date",
			"location",
			"contact",
			"user_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},
			"item_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
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
			"location": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},
			"contact": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},
			"user_id": bson.M{
				"bsonType": "string",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
