package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceStore(t *testing.T) {
	ctx := context.Background()
	s := NewPreferenceStore()

	_, found, err := s.Get(ctx, "leads-mvp:v1")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte(`{"searchText":"a"}`)
	require.NoError(t, s.Set(ctx, "leads-mvp:v1", value))
	value[0] = 'X'

	got, found, err := s.Get(ctx, "leads-mvp:v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"searchText":"a"}`, string(got))

	require.NoError(t, s.Set(ctx, "leads-mvp:v1", []byte("{}")))
	got, _, _ = s.Get(ctx, "leads-mvp:v1")
	assert.Equal(t, "{}", string(got))
}
