package repository

import (
	"context"
	"time"

	"github.com/shapeshed/shapeshed-backend/internal/database"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles user data access.
type UserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.Mongo, timeout time.Duration) *UserRepository {
	return &UserRepository{coll: db.Users(), timeout: timeout}
}

// List retrieves every user document.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail returns mongo.ErrNoDocuments when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	u := &model.User{}
	if err := r.coll.FindOne(ctx, bson.M{model.UserFieldEmail: email}).Decode(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts u as given.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.InsertResult, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// AddSelectedClass adds classID to mySelectedClasses unless already present.
func (r *UserRepository) AddSelectedClass(ctx context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"$addToSet": bson.M{model.UserFieldSelectedClasses: classID}})
}

// AddEnrolledClass adds classID to myEnrolledClasses unless already present.
func (r *UserRepository) AddEnrolledClass(ctx context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"$addToSet": bson.M{model.UserFieldEnrolledClasses: classID}})
}

// RemoveSelectedClass pulls every occurrence of classID from mySelectedClasses.
func (r *UserRepository) RemoveSelectedClass(ctx context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"$pull": bson.M{model.UserFieldSelectedClasses: classID}})
}

// SetRole overwrites userRole.
func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role string) (*model.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"$set": bson.M{model.UserFieldRole: role}})
}

func (r *UserRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.UpdateResult, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
