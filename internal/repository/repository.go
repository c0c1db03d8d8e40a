package repository

import (
	"context"
	"time"

	"github.com/shapeshed/shapeshed-backend/internal/model"
	"go.mongodb.org/mongo-driver/mongo"
)

// opContext bounds a single driver call. A zero timeout leaves ctx untouched.
func opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func insertResult(res *mongo.InsertOneResult) *model.InsertResult {
	return &model.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) *model.UpdateResult {
	return &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}
