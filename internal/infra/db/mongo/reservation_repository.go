package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/shared/daterange"
)

// ReservationRepository answers the overlap queries the inventory reconciler
// aggregates over. Read-only: reservations are written by the booking
// workflow, not by this service.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) ActiveOnDate(ctx context.Context, property catalog.PropertyID, date time.Time) ([]reservation.Reservation, error) {
	day := daterange.Day(date).UnixMilli()
	filter := bson.M{
		"property_id": string(property),
		"check_in":    bson.M{"$lte": day},
		"check_out":   bson.M{"$gt": day},
		"status": bson.M{"$nin": bson.A{
			string(reservation.StatusCancelled),
			string(reservation.StatusNoShow),
		}},
	}
	return r.find(ctx, filter)
}

func (r *ReservationRepository) OverlappingRange(ctx context.Context, property catalog.PropertyID, window daterange.DateRange) ([]reservation.Reservation, error) {
	filter := bson.M{
		"property_id": string(property),
		"check_in":    bson.M{"$lt": window.CheckOut.UnixMilli()},
		"check_out":   bson.M{"$gt": window.CheckIn.UnixMilli()},
	}
	return r.find(ctx, filter)
}

func (r *ReservationRepository) ByCategoryLabel(ctx context.Context, property catalog.PropertyID, rawLabel string) ([]reservation.Reservation, error) {
	return r.find(ctx, byLabelFilter(property, rawLabel))
}

// byLabelFilter matches the raw pick label case-insensitively, same as the
// memory adapter's EqualFold. The regex is anchored and quoted so the label
// is compared as a whole literal, not as a pattern.
func byLabelFilter(property catalog.PropertyID, rawLabel string) bson.M {
	return bson.M{
		"property_id": string(property),
		"picks.room_type": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(rawLabel) + "$",
			Options: "i",
		},
	}
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]reservation.Reservation, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo: query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode reservations: %w", err)
	}
	out := make([]reservation.Reservation, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toAggregate())
	}
	return out, nil
}

type reservationDocument struct {
	ID            string         `bson:"_id"`
	PropertyID    string         `bson:"property_id"`
	CheckIn       int64          `bson:"check_in"`
	CheckOut      int64          `bson:"check_out"`
	Status        string         `bson:"status"`
	AssignedRooms []string       `bson:"assigned_rooms"`
	Picks         []pickDocument `bson:"picks"`
}

type pickDocument struct {
	RoomType string `bson:"room_type"`
	Count    int    `bson:"count"`
}

func (d reservationDocument) toAggregate() reservation.Reservation {
	picks := make([]reservation.Pick, 0, len(d.Picks))
	for _, p := range d.Picks {
		picks = append(picks, reservation.Pick{RawLabel: p.RoomType, Units: p.Count})
	}
	return reservation.Reservation{
		ID:            d.ID,
		PropertyID:    catalog.PropertyID(d.PropertyID),
		Stay:          daterange.New(time.UnixMilli(d.CheckIn).UTC(), time.UnixMilli(d.CheckOut).UTC()),
		Status:        reservation.Status(d.Status),
		AssignedRooms: d.AssignedRooms,
		Picks:         picks,
	}
}
