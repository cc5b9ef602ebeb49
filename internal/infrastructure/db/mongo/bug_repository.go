package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

const collectionBugs = "bugs"

type BugRepository struct {
	col *mongo.Collection
}

func NewBugRepository(db *mongo.Database) *BugRepository {
	return &BugRepository{col: db.Collection(collectionBugs)}
}

type bugDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	Project     string             `bson:"project,omitempty"`
	Tags        []string           `bson:"tags,omitempty"`
	AssignedTo  string             `bson:"assigned_to,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toBugDoc(b *domain.Bug) (bugDoc, error) {
	doc := bugDoc{
		Title:       b.Title,
		Description: b.Description,
		Status:      string(b.Status),
		Priority:    string(b.Priority),
		Project:     b.Project,
		Tags:        b.Tags,
		AssignedTo:  b.AssignedTo,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.ID != "" {
		oid, err := primitive.ObjectIDFromHex(b.ID)
		if err != nil {
			return bugDoc{}, domain.ErrBugNotFound
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d bugDoc) toDomain() *domain.Bug {
	return &domain.Bug{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.BugStatus(d.Status),
		Priority:    domain.BugPriority(d.Priority),
		Project:     d.Project,
		Tags:        d.Tags,
		AssignedTo:  d.AssignedTo,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// Insert persists a new bug document and returns the bug with its generated ID.
func (r *BugRepository) Insert(ctx context.Context, b *domain.Bug) (*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toBugDoc(b)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert bug: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByID retrieves one bug. A malformed id is reported as not found, the
// same way an unknown one is.
func (r *BugRepository) FindByID(ctx context.Context, id string) (*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBugNotFound
	}

	var doc bugDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBugNotFound
		}
		return nil, fmt.Errorf("find bug: %w", err)
	}
	return doc.toDomain(), nil
}

// FindAll returns every bug ordered by created_at descending.
func (r *BugRepository) FindAll(ctx context.Context) ([]*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	defer cursor.Close(ctx)

	var bugs []*domain.Bug
	for cursor.Next(ctx) {
		var doc bugDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode bug: %w", err)
		}
		bugs = append(bugs, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	return bugs, nil
}

// Replace overwrites the full document identified by b.ID.
func (r *BugRepository) Replace(ctx context.Context, b *domain.Bug) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toBugDoc(b)
	if err != nil {
		return err
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("replace bug: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

// Delete removes one bug document. Comments referencing it stay behind.
func (r *BugRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBugNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bug: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the bugs collection.
func (r *BugRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
