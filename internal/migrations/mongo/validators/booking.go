package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingSchema is the server-side document validator for the Bookings
// collection. The (date, seat_number) uniqueness guarantee lives in the
// index, not here; this schema only keeps document shape honest.
func BookingSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"intern_id", "date", "seat_number", "is_confirmed", "attendance", "created_at"},
			"properties": bson.M{
				"intern_id": bson.M{
					"bsonType":    "string",
					"description": "owning intern's ID in hex form, required",
				},
				"date": bson.M{
					"bsonType":    "date",
					"description": "booking day at UTC midnight, required",
				},
				"seat_number": bson.M{
					"bsonType":    "int",
					"minimum":     1,
					"description": "seat number, required, >= 1",
				},
				"special_request": bson.M{
					"bsonType":  "string",
					"maxLength": 500,
				},
				"is_confirmed": bson.M{
					"bsonType": "bool",
				},
				"attendance": bson.M{
					"enum":        []string{"unset", "present", "absent"},
					"description": "attendance marker, closed set",
				},
				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}
