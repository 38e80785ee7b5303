package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorePolicy_Handle(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	assert.NoError(t, BestEffort.handle(ctx, nil, "f", "msg"))
	assert.NoError(t, MustPropagate.handle(ctx, nil, "f", "msg"))
	assert.NoError(t, BestEffort.handle(ctx, boom, "f", "msg"))
	assert.ErrorIs(t, MustPropagate.handle(ctx, boom, "f", "msg"), boom)
}
