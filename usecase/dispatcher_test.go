package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/peopledash/domain"
)

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	d.RegisterQuery("b-view", func(_ context.Context, params interface{}) (interface{}, error) {
		return params, nil
	})
	d.RegisterQuery("a-view", func(context.Context, interface{}) (interface{}, error) {
		return "a", nil
	})

	got, err := d.ExecuteQuery(context.Background(), "b-view", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, []string{"a-view", "b-view"}, d.Queries())

	_, err = d.ExecuteQuery(context.Background(), "missing", nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestActor(t *testing.T) {
	assert.Equal(t, DefaultActor, ActorFrom(context.Background()))
	assert.Equal(t, DefaultActor, ActorFrom(WithActor(context.Background(), "")))
	assert.Equal(t, "u-1", ActorFrom(WithActor(context.Background(), "u-1")))
}
