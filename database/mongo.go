package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"railway-reservation/model"
)

const (
	TrainsCollection   = "trains"
	BookingsCollection = "bookings"
)

// MongoStore keeps the snapshots as one document per record. Documents carry
// their position in seq since lookups depend on insertion order.
type MongoStore struct {
	client   *mongo.Client
	trains   *mongo.Collection
	bookings *mongo.Collection
}

type trainDocument struct {
	Seq         int `bson:"seq"`
	model.Train `bson:",inline"`
}

type bookingDocument struct {
	Seq           int `bson:"seq"`
	model.Booking `bson:",inline"`
}

func ConnectMongo(ctx context.Context, connString, database string) (*MongoStore, error) {
	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:   client,
		trains:   db.Collection(TrainsCollection),
		bookings: db.Collection(BookingsCollection),
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) LoadTrains(ctx context.Context) ([]model.Train, error) {
	var docs []trainDocument
	if err := findAll(ctx, s.trains, &docs); err != nil {
		return nil, err
	}
	return trainsFromDocuments(docs), nil
}

func (s *MongoStore) LoadBookings(ctx context.Context) ([]model.Booking, error) {
	var docs []bookingDocument
	if err := findAll(ctx, s.bookings, &docs); err != nil {
		return nil, err
	}
	return bookingsFromDocuments(docs)
}

func (s *MongoStore) SaveTrains(ctx context.Context, trains []model.Train) error {
	return replaceCollection(ctx, s.trains, trainDocuments(trains))
}

func (s *MongoStore) SaveBookings(ctx context.Context, bookings []model.Booking) error {
	return replaceCollection(ctx, s.bookings, bookingDocuments(bookings))
}

func findAll(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return fmt.Errorf("read %s: %w", coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedRecord, coll.Name(), err)
	}
	return nil
}

// replaceCollection is not atomic: a failure after the delete leaves the
// collection empty or partially filled.
func replaceCollection(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", coll.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("write %s: %w", coll.Name(), err)
	}
	return nil
}

func trainDocuments(trains []model.Train) []interface{} {
	docs := make([]interface{}, 0, len(trains))
	for i, t := range trains {
		docs = append(docs, trainDocument{Seq: i, Train: t})
	}
	return docs
}

func bookingDocuments(bookings []model.Booking) []interface{} {
	docs := make([]interface{}, 0, len(bookings))
	for i, b := range bookings {
		docs = append(docs, bookingDocument{Seq: i, Booking: b})
	}
	return docs
}

func trainsFromDocuments(docs []trainDocument) []model.Train {
	trains := make([]model.Train, 0, len(docs))
	for _, d := range docs {
		trains = append(trains, d.Train)
	}
	return trains
}

func bookingsFromDocuments(docs []bookingDocument) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0, len(docs))
	for _, d := range docs {
		if _, err := model.ParseBookingStatus(string(d.Status)); err != nil {
			return nil, fmt.Errorf("%w: %s seq %d: %v", ErrMalformedRecord, BookingsCollection, d.Seq, err)
		}
		bookings = append(bookings, d.Booking)
	}
	return bookings, nil
}
