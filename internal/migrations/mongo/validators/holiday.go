package validators

import "go.mongodb.org/mongo-driver/bson"

// HolidaySchema is the server-side document validator for the Holidays
// collection.
func HolidaySchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"date", "reason", "created_at"},
			"properties": bson.M{
				"date": bson.M{
					"bsonType":    "date",
					"description": "holiday day at UTC midnight, required",
				},
				"reason": bson.M{
					"bsonType":    "string",
					"minLength":   2,
					"maxLength":   200,
					"description": "human-readable reason, required",
				},
				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}
