package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"hotelier/internal/app/drafts"
)

// DraftRepository persists quote drafts for the booking workflow to pick up.
type DraftRepository struct {
	col *mongo.Collection
}

func NewDraftRepository(db *mongo.Database) *DraftRepository {
	return &DraftRepository{col: db.Collection("quote_drafts")}
}

func (r *DraftRepository) Save(ctx context.Context, d *drafts.Draft) error {
	doc := draftDocument{
		ID:                  d.ID,
		ReferenceCode:       d.ReferenceCode,
		PropertyID:          d.PropertyID,
		GuestName:           d.GuestName,
		GuestEmail:          d.GuestEmail,
		GuestPhone:          d.GuestPhone,
		CheckIn:             d.CheckIn.UnixMilli(),
		CheckOut:            d.CheckOut.UnixMilli(),
		Nights:              d.Nights,
		Pick:                d.Pick,
		TotalWithCommission: d.TotalWithCommission,
		HotelPayout:         d.HotelPayout,
		Currency:            d.Currency,
		CreatedAt:           d.CreatedAt.UnixMilli(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo: insert draft: %w", err)
	}
	return nil
}

type draftDocument struct {
	ID                  string          `bson:"_id"`
	ReferenceCode       string          `bson:"reference_code"`
	PropertyID          string          `bson:"property_id"`
	GuestName           string          `bson:"guest_name"`
	GuestEmail          string          `bson:"guest_email"`
	GuestPhone          string          `bson:"guest_phone"`
	CheckIn             int64           `bson:"check_in"`
	CheckOut            int64           `bson:"check_out"`
	Nights              int             `bson:"nights"`
	Pick                drafts.PickLine `bson:"pick"`
	TotalWithCommission float64         `bson:"total_with_commission"`
	HotelPayout         float64         `bson:"hotel_payout"`
	Currency            string          `bson:"currency"`
	CreatedAt           int64           `bson:"created_at"`
}
