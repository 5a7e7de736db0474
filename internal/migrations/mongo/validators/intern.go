package validators

import "go.mongodb.org/mongo-driver/bson"

// InternSchema is the server-side document validator for the Interns
// collection.
func InternSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"intern_id", "first_name", "last_name", "email", "password_hash", "created_at"},
			"properties": bson.M{
				"intern_id": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 50,
				},
				"first_name": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 100,
				},
				"last_name": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 100,
				},
				"email": bson.M{
					"bsonType":    "string",
					"pattern":     "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$",
					"description": "lowercase email, unique via index",
				},
				"password_hash": bson.M{
					"bsonType": "string",
				},
				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}
