package listmembers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/listmembers"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsRegistrationOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	alice := GivenMemberWasAdded(t, ctx, store, "Alice Johnson")
	bob := GivenMemberWasAdded(t, ctx, store, "Bob Williams")
	handler := listmembers.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, listmembers.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []catalog.Member{alice, bob}, result.Members)
}
