package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/memstore"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDetailResolvesClassesInOrder(t *testing.T) {
	classes := memstore.NewClasses()
	classes.Add("Yoga", 10)
	classes.Add("Boxing", 4)
	instructors := memstore.NewInstructors()
	id := instructors.Add("Boxing", "Ghost", "Yoga", "Boxing")

	svc := NewInstructorService(instructors, classes, memstore.NewCache(), zerolog.Nop())
	detail, err := svc.Detail(context.Background(), id.Hex())
	require.NoError(t, err)

	require.Len(t, detail.Classes, 4)
	assert.Equal(t, id, detail.ID)
	assert.Equal(t, "Boxing", detail.Classes[0].Name())
	assert.Nil(t, detail.Classes[1])
	assert.Equal(t, "Yoga", detail.Classes[2].Name())
	assert.Equal(t, "Boxing", detail.Classes[3].Name())
	assert.Equal(t, 3, classes.Lookups)
}

func TestDetailNoClasses(t *testing.T) {
	instructors := memstore.NewInstructors()
	id := instructors.Add()

	svc := NewInstructorService(instructors, memstore.NewClasses(), memstore.NewCache(), zerolog.Nop())
	detail, err := svc.Detail(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.NotNil(t, detail.Classes)
	assert.Empty(t, detail.Classes)
}

func TestDetailOneLookupFailsAll(t *testing.T) {
	classes := memstore.NewClasses()
	classes.Add("Yoga", 10)
	classes.NameErr["Boxing"] = errors.New("socket closed")
	instructors := memstore.NewInstructors()
	id := instructors.Add("Yoga", "Boxing")

	svc := NewInstructorService(instructors, classes, memstore.NewCache(), zerolog.Nop())
	_, err := svc.Detail(context.Background(), id.Hex())
	assert.ErrorIs(t, err, classes.NameErr["Boxing"])
}

func TestDetailUnknownAndMalformedID(t *testing.T) {
	svc := NewInstructorService(memstore.NewInstructors(), memstore.NewClasses(), memstore.NewCache(), zerolog.Nop())

	_, err := svc.Detail(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Detail(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestInstructorListCacheDroppedOnCreate(t *testing.T) {
	instructors := memstore.NewInstructors()
	instructors.Add("Yoga")
	cache := memstore.NewCache()
	svc := NewInstructorService(instructors, memstore.NewClasses(), cache, zerolog.Nop())
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Create(ctx, &model.Instructor{Classes: []string{"Boxing"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Deletes)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateStoresEmptyClassList(t *testing.T) {
	instructors := memstore.NewInstructors()
	svc := NewInstructorService(instructors, memstore.NewClasses(), memstore.NewCache(), zerolog.Nop())

	res, err := svc.Create(context.Background(), &model.Instructor{})
	require.NoError(t, err)

	id := res.InsertedID.(primitive.ObjectID)
	require.NotNil(t, instructors.Docs[id].Classes)

	detail, err := svc.Detail(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.NotNil(t, detail.Classes)
}
