package notificationRepo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func notificationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "sentAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "billId", Value: 1}, {Key: "type", Value: 1}, {Key: "sentAt", Value: -1}}},
		{Keys: bson.D{{Key: "read", Value: 1}, {Key: "readAt", Value: 1}}},
	}
}
