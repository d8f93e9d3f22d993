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

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
	log zerolog.Logger
}

func NewProjectRepository(db *mongo.Database, log zerolog.Logger) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects), log: log}
}

// Upsert writes the whole project document, activities included.
func (r *ProjectRepository) Upsert(ctx context.Context, p *domain.InternProject) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// FindByID returns domain.ErrProjectNotFound when absent.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.InternProject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.InternProject
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all projects, optionally scoped to an owner. Undecodable
// documents are skipped with a warning.
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]*domain.InternProject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	projects := make([]*domain.InternProject, 0)
	for cur.Next(ctx) {
		var p domain.InternProject
		if err := cur.Decode(&p); err != nil {
			r.log.Warn().Err(err).Msg("skipping undecodable project")
			continue
		}
		projects = append(projects, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// ReplaceActivities overwrites the project's embedded activity array.
func (r *ProjectRepository) ReplaceActivities(ctx context.Context, projectID string, activities []domain.DailyActivity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if activities == nil {
		activities = []domain.DailyActivity{}
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$set": bson.M{"activities": activities}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the project queries rely on.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "start_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
