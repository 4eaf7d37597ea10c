package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/category"
)

// InventoryRepository counts physical rooms per canonical category. Room
// labels are free-form in the store; normalization happens here so two
// differently labelled doubles land in the same bucket.
type InventoryRepository struct {
	col *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{col: db.Collection("rooms")}
}

func (r *InventoryRepository) Counts(ctx context.Context, property catalog.PropertyID) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"property_id": string(property)}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$room_type",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo: aggregate room counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		RoomType string `bson:"_id"`
		Count    int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongo: decode room counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[category.Normalize(row.RoomType)] += row.Count
	}
	return counts, nil
}
