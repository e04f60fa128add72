package validators

import (
	"tembea/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"userId",
			"hostId",
			"propertyId",
			"checkIn",
			"checkOut",
			"guests",
			"status",
			"bookingType",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"userId": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"hostId": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"propertyId": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"propertyName": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"checkIn": bson.M{
				"bsonType": "date",
			},

			"checkOut": bson.M{
				"bsonType": "date",
			},

			"guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  50,
			},

			"totalAmount": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					model.BookingStatusPending,
					model.BookingStatusConfirmed,
					model.BookingStatusCancelled,
				},
			},

			"bookingType": bson.M{
				"bsonType": "string",
				"enum": []string{
					model.BookingTypeStay,
					model.BookingTypeActivity,
				},
			},

			"cancelReason": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}

// ListingValidator only pins the fields the catalog sorts on. Listing
// documents are otherwise free-form and normalized at read time.
var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,
		"properties": bson.M{
			"createdAt": bson.M{
				"bsonType": []string{"date", "string"},
			},
			"date": bson.M{
				"bsonType": []string{"date", "string"},
			},
		},
	},
}
