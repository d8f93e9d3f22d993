package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

const (
	collectionTodoWeeks = "todo_weeks"
	collectionTodoItems = "todo_items"
)

type TodoRepository struct {
	weeks *mongo.Collection
	items *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{
		weeks: db.Collection(collectionTodoWeeks),
		items: db.Collection(collectionTodoItems),
	}
}

func (r *TodoRepository) InsertWeek(ctx context.Context, w *domain.TodoWeek) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.weeks.InsertOne(ctx, w)
	return err
}

func (r *TodoRepository) ListWeeks(ctx context.Context) ([]*domain.TodoWeek, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.weeks.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var weeks []*domain.TodoWeek
	if err := cur.All(ctx, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

func (r *TodoRepository) InsertItem(ctx context.Context, it *domain.TodoItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.items.InsertOne(ctx, it)
	return err
}

func (r *TodoRepository) FindItem(ctx context.Context, id string) (*domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var it domain.TodoItem
	err := r.items.FindOne(ctx, bson.M{"_id": id}).Decode(&it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *TodoRepository) SetItemDone(ctx context.Context, id string, done bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.items.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"done": done}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoItemNotFound
	}
	return nil
}

func (r *TodoRepository) ListItems(ctx context.Context) ([]*domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.items.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.TodoItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
