package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/shared/daterange"
)

// PropertyRepository reads hotel definitions: room categories, commission
// settings, calendar exceptions and currency.
type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("properties")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id catalog.PropertyID) (*catalog.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("mongo: load property %s: %w", id, err)
	}
	return doc.toAggregate()
}

type propertyDocument struct {
	ID         string             `bson:"_id"`
	Name       string             `bson:"name"`
	Currency   string             `bson:"currency"`
	Commission float64            `bson:"commission"`
	RoomTypes  []roomTypeDocument `bson:"room_types"`
}

type roomTypeDocument struct {
	Key         string                      `bson:"key"`
	DisplayName string                      `bson:"display_name"`
	BasePrice   float64                     `bson:"base_price"`
	BaseCost    float64                     `bson:"base_cost"`
	Commission  float64                     `bson:"commission"`
	Calendar    []calendarExceptionDocument `bson:"calendar"`
}

type calendarExceptionDocument struct {
	Date  string  `bson:"date"` // YYYY-MM-DD
	Price float64 `bson:"price"`
	Cost  float64 `bson:"cost"`
}

func (d propertyDocument) toAggregate() (*catalog.Property, error) {
	p := &catalog.Property{
		ID:         catalog.PropertyID(d.ID),
		Name:       d.Name,
		Currency:   d.Currency,
		Commission: d.Commission,
		Categories: make([]catalog.RoomCategory, 0, len(d.RoomTypes)),
	}
	for _, rt := range d.RoomTypes {
		exceptions := make([]catalog.CalendarException, 0, len(rt.Calendar))
		for _, exc := range rt.Calendar {
			day, err := time.Parse(daterange.DayKeyFormat, exc.Date)
			if err != nil {
				return nil, fmt.Errorf("mongo: property %s category %s: bad calendar date %q: %w", d.ID, rt.Key, exc.Date, err)
			}
			exceptions = append(exceptions, catalog.CalendarException{Date: day, Price: exc.Price, Cost: exc.Cost})
		}
		p.Categories = append(p.Categories, catalog.RoomCategory{
			Key:         rt.Key,
			DisplayName: rt.DisplayName,
			BasePrice:   rt.BasePrice,
			BaseCost:    rt.BaseCost,
			Commission:  rt.Commission,
			Calendar:    catalog.BuildCalendar(exceptions),
		})
	}
	return p, nil
}
