package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

const collectionTimeEntries = "time_entries"

type TimeEntryRepository struct {
	col *mongo.Collection
	log zerolog.Logger
}

func NewTimeEntryRepository(db *mongo.Database, log zerolog.Logger) *TimeEntryRepository {
	return &TimeEntryRepository{col: db.Collection(collectionTimeEntries), log: log}
}

// Insert appends a new ledger entry.
func (r *TimeEntryRepository) Insert(ctx context.Context, e *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, e)
	return err
}

// FindActive returns the user's open entry (no clock-out), or
// domain.ErrNoActiveEntry when none exists.
func (r *TimeEntryRepository) FindActive(ctx context.Context, username string) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"username":  username,
		"clock_out": bson.M{"$exists": false},
	}

	var e domain.TimeEntry
	err := r.col.FindOne(ctx, filter).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoActiveEntry
		}
		return nil, err
	}
	return &e, nil
}

// SetClockOut stamps the clock-out on the entry with the given id.
func (r *TimeEntryRepository) SetClockOut(ctx context.Context, id string, out time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"clock_out": out}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTimeEntryNotFound
	}
	return nil
}

// ListByUsername returns the user's entries ordered by clock-in descending.
// Documents that fail to decode are skipped with a warning rather than
// failing the whole read.
func (r *TimeEntryRepository) ListByUsername(ctx context.Context, username string) ([]*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "clock_in", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := make([]*domain.TimeEntry, 0)
	for cur.Next(ctx) {
		var e domain.TimeEntry
		if err := cur.Decode(&e); err != nil {
			r.log.Warn().Err(err).Str("username", username).Msg("skipping undecodable time entry")
			continue
		}
		entries = append(entries, &e)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureIndexes creates the indexes the ledger queries rely on.
func (r *TimeEntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "clock_in", Value: -1}}},
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "clock_out", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
