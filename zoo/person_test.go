package zoo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/zoo-engine/generic"
	"github.com/warp/zoo-engine/zoo"
)

func TestVisitor_Visit(t *testing.T) {
	v := zoo.Person{Name: "Alice", ID: "V1", Role: zoo.Visitor}
	leo := mustAnimal(t, zoo.Lion, "Leo", 5)

	assert.Equal(t, []string{"Alice successfully visited Leo."}, v.Visit(leo))
}

func TestPersonnel_Visit_CleansHabitat(t *testing.T) {
	p := zoo.Person{Name: "Bob", ID: "P1", Role: zoo.Personnel}
	leo := mustAnimal(t, zoo.Lion, "Leo", 5)

	assert.Equal(t, []string{
		"Bob started cleaning Leo's habitat.",
		"Cleaning Leo's habitat: Removing bones and refreshing sand.",
	}, p.Visit(leo))
}

func TestVisitor_Feed_NeverTouchesLedger(t *testing.T) {
	// GIVEN: any stock level, including plenty and none
	// WHEN: a visitor feeds
	// THEN: Unauthorized, ledger unchanged
	v := zoo.Person{Name: "Alice", ID: "V1", Role: zoo.Visitor}
	leo := mustAnimal(t, zoo.Lion, "Leo", 5)

	for _, meat := range []string{"0", "5", "1000"} {
		ledger := newLedger(t, map[generic.Category]string{"Meat": meat})

		lines, err := v.Feed(context.Background(), leo, 1, ledger)

		assert.ErrorIs(t, err, zoo.ErrUnauthorized)
		assert.Equal(t, "Visitors do not have the authority to feed animals.", err.Error())
		assert.Empty(t, lines)
		amount, _ := ledger.Available(context.Background(), "Meat")
		assert.Equal(t, meat, amount.String())
	}
}

func TestPersonnel_Feed_Success(t *testing.T) {
	p := zoo.Person{Name: "Bob", ID: "P1", Role: zoo.Personnel}
	leo := mustAnimal(t, zoo.Lion, "Leo", 5)
	ledger := newLedger(t, map[generic.Category]string{"Meat": "30"})

	lines, err := p.Feed(context.Background(), leo, 2, ledger)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Bob attempts to feed Leo.",
		"Leo has been given 10.000 kgs of meat",
	}, lines)
}

func TestPersonnel_Feed_InsufficientStock_KeepsAttemptLine(t *testing.T) {
	p := zoo.Person{Name: "Bob", ID: "P1", Role: zoo.Personnel}
	leo := mustAnimal(t, zoo.Lion, "Leo", 5)
	ledger := newLedger(t, map[generic.Category]string{"Meat": "5"})

	lines, err := p.Feed(context.Background(), leo, 2, ledger)

	assert.ErrorIs(t, err, generic.ErrInsufficientStock)
	assert.Equal(t, []string{"Bob attempts to feed Leo."}, lines)
	assert.Equal(t, "5.000", stockOf(t, ledger, "Meat"))
}

func TestParseRole(t *testing.T) {
	r, err := zoo.ParseRole("Personnel")
	require.NoError(t, err)
	assert.Equal(t, zoo.Personnel, r)

	_, err = zoo.ParseRole("Manager")
	assert.ErrorIs(t, err, zoo.ErrUnknownRole)
}
