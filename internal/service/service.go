package service

import (
	"context"
	"errors"

	"github.com/shapeshed/shapeshed-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidID is returned when a path identifier is not a hex ObjectID.
	ErrInvalidID = errors.New("invalid object id")
	// ErrNotFound is returned when a looked-up document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUserExists is returned when the email pre-check finds a user.
	ErrUserExists = errors.New("user already exists")
	// ErrDuplicateUser is returned when the insert itself is rejected by the
	// unique email index, meaning a concurrent registration won.
	ErrDuplicateUser = errors.New("duplicate user email")
)

// UserStore is the users collection.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) (*model.InsertResult, error)
	AddSelectedClass(ctx context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error)
	AddEnrolledClass(ctx context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error)
	RemoveSelectedClass(ctx context.Context, id primitive.ObjectID, classID string) (*model.UpdateResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (*model.UpdateResult, error)
}

// ClassStore is the classes collection.
type ClassStore interface {
	List(ctx context.Context) ([]model.Class, error)
	FindByName(ctx context.Context, name string) (*model.Class, error)
	Create(ctx context.Context, c *model.Class) (*model.InsertResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.UpdateResult, error)
	DecrementSeats(ctx context.Context, id primitive.ObjectID) (*model.UpdateResult, error)
}

// InstructorStore is the instructors collection.
type InstructorStore interface {
	List(ctx context.Context) ([]model.Instructor, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Instructor, error)
	Create(ctx context.Context, i *model.Instructor) (*model.InsertResult, error)
}

// ListCache caches whole-collection listings.
type ListCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
