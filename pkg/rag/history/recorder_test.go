package history

import (
	"context"
	"errors"
	"testing"

	"contract-workflow-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeList struct {
	items   []string
	pushErr error
}

func (f *fakeList) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.pushErr != nil {
		cmd.SetErr(f.pushErr)
		return cmd
	}
	for _, v := range values {
		f.items = append([]string{v.(string)}, f.items...)
	}
	cmd.SetVal(int64(len(f.items)))
	return cmd
}

func (f *fakeList) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	if stop+1 < int64(len(f.items)) {
		f.items = f.items[start : stop+1]
	}
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeList) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	end := stop + 1
	if end > int64(len(f.items)) {
		end = int64(len(f.items))
	}
	cmd := redis.NewStringSliceCmd(ctx)
	cmd.SetVal(append([]string(nil), f.items[start:end]...))
	return cmd
}

func TestRecorder_RecordAndRecent(t *testing.T) {
	store := &fakeList{}
	r := NewRecorder(store, "history", 2, logger.NewNopLogger())
	ctx := context.Background()

	r.Record(ctx, "lease in CA")
	r.Record(ctx, "  ")
	r.Record(ctx, "residential property at 1 Main St")
	r.Record(ctx, "condo purchase")

	recent, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"condo purchase", "residential property at 1 Main St"}, recent)
}

func TestRecorder_RecordSwallowsErrors(t *testing.T) {
	r := NewRecorder(&fakeList{pushErr: errors.New("connection refused")}, "history", 10, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		r.Record(context.Background(), "lease in CA")
	})
}
