package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_BeginAndCommit(t *testing.T) {
	nav := NewNavigator()

	ctx, token := nav.Begin(context.Background(), "sess1", RouteVideos)
	require.NoError(t, ctx.Err())
	assert.True(t, nav.Commit("sess1", token))

	current, ok := nav.Current("sess1")
	require.True(t, ok)
	assert.Equal(t, RouteVideos, current)
}

func TestNavigator_SupersededLoadIsRejected(t *testing.T) {
	nav := NewNavigator()

	firstCtx, firstToken := nav.Begin(context.Background(), "sess1", RouteVideos)
	_, secondToken := nav.Begin(context.Background(), "sess1", RouteHistory)

	assert.Error(t, firstCtx.Err(), "starting a navigation cancels the previous load")
	assert.False(t, nav.Commit("sess1", firstToken))
	assert.True(t, nav.Commit("sess1", secondToken))

	current, ok := nav.Current("sess1")
	require.True(t, ok)
	assert.Equal(t, RouteHistory, current, "current route reflects the newest navigation")
}

func TestNavigator_SessionsAreIndependent(t *testing.T) {
	nav := NewNavigator()

	_, token1 := nav.Begin(context.Background(), "sess1", RouteVideos)
	_, token2 := nav.Begin(context.Background(), "sess2", RouteAbout)

	assert.True(t, nav.Commit("sess1", token1))
	assert.True(t, nav.Commit("sess2", token2))
}

func TestNavigator_CurrentBeforeFirstNavigation(t *testing.T) {
	nav := NewNavigator()

	route, ok := nav.Current("fresh")
	assert.False(t, ok, "a session starts uninitialized")
	assert.Equal(t, DefaultRoute, route)
}

func TestNavigator_CommitUnknownSession(t *testing.T) {
	nav := NewNavigator()
	assert.False(t, nav.Commit("ghost", "token"))
}

func TestNavigator_FinishReleasesOnlyCurrentLoad(t *testing.T) {
	nav := NewNavigator()

	_, staleToken := nav.Begin(context.Background(), "sess1", RouteVideos)
	currentCtx, currentToken := nav.Begin(context.Background(), "sess1", RouteHistory)

	// A late finish from the superseded load must not cancel the current one.
	nav.Finish("sess1", staleToken)
	assert.NoError(t, currentCtx.Err())

	nav.Finish("sess1", currentToken)
	assert.True(t, nav.Commit("sess1", currentToken), "finish does not invalidate the token")
}

func TestNavigator_Drop(t *testing.T) {
	nav := NewNavigator()

	ctx, token := nav.Begin(context.Background(), "sess1", RouteVideos)
	nav.Drop("sess1")

	assert.Error(t, ctx.Err(), "dropping a session cancels its in-flight load")
	assert.False(t, nav.Commit("sess1", token))

	_, ok := nav.Current("sess1")
	assert.False(t, ok)
}
