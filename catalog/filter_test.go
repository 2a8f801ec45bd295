package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

func Test_FilterBuilder_Combinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() catalog.Filter
		validate func(t *testing.T, f catalog.Filter)
	}{
		{
			name: "empty_filter",
			build: func() catalog.Filter {
				return catalog.BuildFilter().Finalize()
			},
			validate: func(t *testing.T, f catalog.Filter) {
				assert.True(t, f.IsEmpty())
				assert.False(t, f.IncludesBorrowers())
			},
		},
		{
			name: "books_are_sorted_and_deduplicated",
			build: func() catalog.Filter {
				return catalog.BuildFilter().Books("b2", "b1", "", "b2").Finalize()
			},
			validate: func(t *testing.T, f catalog.Filter) {
				assert.Equal(t, []catalog.BookID{"b1", "b2"}, f.BookIDs())
				assert.Empty(t, f.MemberIDs())
			},
		},
		{
			name: "repeated_calls_accumulate",
			build: func() catalog.Filter {
				return catalog.BuildFilter().Members("m2").Members("m1", "m2").Finalize()
			},
			validate: func(t *testing.T, f catalog.Filter) {
				assert.Equal(t, []catalog.MemberID{"m1", "m2"}, f.MemberIDs())
			},
		},
		{
			name: "only_empty_ids_yield_empty_filter",
			build: func() catalog.Filter {
				return catalog.BuildFilter().Books("").BooksIssuedTo("").Finalize()
			},
			validate: func(t *testing.T, f catalog.Filter) {
				assert.True(t, f.IsEmpty())
			},
		},
		{
			name: "all_parts_combined",
			build: func() catalog.Filter {
				return catalog.BuildFilter().
					Books("b1").
					Members("m1").
					BooksIssuedTo("m1").
					IncludingBorrowers().
					Finalize()
			},
			validate: func(t *testing.T, f catalog.Filter) {
				assert.Equal(t, []catalog.BookID{"b1"}, f.BookIDs())
				assert.Equal(t, []catalog.MemberID{"m1"}, f.MemberIDs())
				assert.Equal(t, []catalog.MemberID{"m1"}, f.BorrowerIDs())
				assert.True(t, f.IncludesBorrowers())
				assert.False(t, f.IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_CopiesDoNotShareState(t *testing.T) {
	// arrange
	base := catalog.BuildFilter().Books("b1", "b2", "b3")

	// act
	first := base.Books("b4").Finalize()
	second := base.Books("b5").Finalize()

	// assert
	assert.Equal(t, []catalog.BookID{"b1", "b2", "b3", "b4"}, first.BookIDs())
	assert.Equal(t, []catalog.BookID{"b1", "b2", "b3", "b5"}, second.BookIDs())
}
