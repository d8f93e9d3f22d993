package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

const collectionInterns = "interns"

type InternRepository struct {
	col *mongo.Collection
}

func NewInternRepository(db *mongo.Database) *InternRepository {
	return &InternRepository{col: db.Collection(collectionInterns)}
}

func (r *InternRepository) Upsert(ctx context.Context, i *domain.Intern) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": i.ID}, i, opts)
	return err
}

func (r *InternRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrInternNotFound
	}
	return nil
}

func (r *InternRepository) FindByID(ctx context.Context, id string) (*domain.Intern, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var i domain.Intern
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&i)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInternNotFound
		}
		return nil, err
	}
	return &i, nil
}

// FindByUsername matches case-insensitively. Usernames are stored lowercased,
// so the lookup lowercases the input rather than using a regex scan.
func (r *InternRepository) FindByUsername(ctx context.Context, username string) (*domain.Intern, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var i domain.Intern
	err := r.col.FindOne(ctx, bson.M{"username": strings.ToLower(username)}).Decode(&i)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInternNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *InternRepository) List(ctx context.Context) ([]*domain.Intern, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var interns []*domain.Intern
	if err := cur.All(ctx, &interns); err != nil {
		return nil, err
	}
	return interns, nil
}

// EnsureIndexes creates a unique index on username, which backs the login
// lookup and the duplicate-username guard.
func (r *InternRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
