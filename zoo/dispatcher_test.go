package zoo_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/zoo-engine/generic"
	"github.com/warp/zoo-engine/zoo"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type fixture struct {
	dispatcher *zoo.Dispatcher
	ledger     *generic.FoodLedger
	out        *bytes.Buffer
	journal    *zoo.Journal
}

// newFixture registers Leo the lion, Koko the chimpanzee, Personnel P1 (Bob)
// and Visitor V1 (Alice).
func newFixture(t *testing.T, levels map[generic.Category]string) *fixture {
	t.Helper()
	registry := zoo.NewRegistry()
	registry.AddAnimal(mustAnimal(t, zoo.Lion, "Leo", 5))
	registry.AddAnimal(mustAnimal(t, zoo.Chimpanzee, "Koko", 10))
	registry.AddPerson(zoo.Person{Name: "Bob", ID: "P1", Role: zoo.Personnel})
	registry.AddPerson(zoo.Person{Name: "Alice", ID: "V1", Role: zoo.Visitor})

	out := &bytes.Buffer{}
	journal := zoo.NewJournal(out)
	ledger := newLedger(t, levels)
	return &fixture{
		dispatcher: &zoo.Dispatcher{Registry: registry, Ledger: ledger, Journal: journal},
		ledger:     ledger,
		out:        out,
		journal:    journal,
	}
}

// exec runs one command and returns the lines after the section header.
func (f *fixture) exec(t *testing.T, line string) ([]string, error) {
	t.Helper()
	f.out.Reset()
	err := f.dispatcher.Execute(context.Background(), line)
	require.NoError(t, f.journal.Flush())
	lines := strings.Split(strings.TrimRight(f.out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, zoo.SectionMarker, lines[0])
	assert.Equal(t, "***Processing new Command***", lines[1])
	return lines[2:], err
}

// =============================================================================
// FEED ANIMAL
// =============================================================================

func TestFeedAnimal_Personnel_Success(t *testing.T) {
	// GIVEN: Leo (Lion, 5), Meat 30, Personnel P1
	// WHEN: Feed Animal,P1,Leo,2
	// THEN: 10 kg consumed, Meat 20
	f := newFixture(t, map[generic.Category]string{"Meat": "30.0"})

	lines, err := f.exec(t, "Feed Animal,P1,Leo,2")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Bob attempts to feed Leo.",
		"Leo has been given 10.000 kgs of meat",
	}, lines)
	assert.Equal(t, "20.000", stockOf(t, f.ledger, "Meat"))
}

func TestFeedAnimal_InsufficientStock(t *testing.T) {
	f := newFixture(t, map[generic.Category]string{"Meat": "5.0"})

	lines, err := f.exec(t, "Feed Animal,P1,Leo,2")

	assert.ErrorIs(t, err, generic.ErrInsufficientStock)
	assert.Equal(t, []string{
		"Bob attempts to feed Leo.",
		"Error: Not enough Meat",
	}, lines)
	assert.Equal(t, "5.000", stockOf(t, f.ledger, "Meat"))
}

func TestFeedAnimal_Visitor_Unauthorized(t *testing.T) {
	f := newFixture(t, map[generic.Category]string{"Meat": "30"})

	lines, err := f.exec(t, "Feed Animal,V1,Leo,1")

	assert.ErrorIs(t, err, zoo.ErrUnauthorized)
	assert.Equal(t, []string{
		"Alice tried to feed Leo",
		"Error: Visitors do not have the authority to feed animals.",
	}, lines)
	assert.Equal(t, "30.000", stockOf(t, f.ledger, "Meat"))
}

func TestFeedAnimal_Chimpanzee_PartialStock_NothingDeducted(t *testing.T) {
	f := newFixture(t, map[generic.Category]string{"Meat": "10", "Plant": "1"})

	lines, err := f.exec(t, "Feed Animal,P1,Koko,1")

	assert.ErrorIs(t, err, generic.ErrInsufficientStock)
	assert.Equal(t, "Error: Not enough Plant", lines[len(lines)-1])
	assert.Equal(t, "10.000", stockOf(t, f.ledger, "Meat"))
	assert.Equal(t, "1.000", stockOf(t, f.ledger, "Plant"))
}

func TestFeedAnimal_InvalidMealCount(t *testing.T) {
	for _, count := range []string{"two", "0", "-3", "1.5"} {
		t.Run(count, func(t *testing.T) {
			f := newFixture(t, map[generic.Category]string{"Meat": "30"})
			line := "Feed Animal,P1,Leo," + count

			lines, err := f.exec(t, line)

			assert.ErrorIs(t, err, zoo.ErrInvalidNumber)
			assert.Equal(t, []string{
				"Error processing command: " + line,
				`Error:invalid number "` + count + `" for meal count`,
			}, lines)
			assert.Equal(t, "30.000", stockOf(t, f.ledger, "Meat"))
		})
	}
}

func TestFeedAnimal_UnknownPersonAndAnimal(t *testing.T) {
	f := newFixture(t, nil)

	lines, err := f.exec(t, "Feed Animal,X9,Leo,1")
	assert.True(t, zoo.IsNotFound(err))
	assert.Equal(t, []string{"Error: There are no visitors or personnel with the id X9"}, lines)

	lines, err = f.exec(t, "Feed Animal,P1,Nemo,1")
	var notFound *zoo.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, zoo.KindAnimal, notFound.Kind)
	assert.Equal(t, []string{"Error: There are no animals with the name Nemo."}, lines)
}

func TestFeedAnimal_MissingFields(t *testing.T) {
	f := newFixture(t, nil)

	lines, err := f.exec(t, "Feed Animal,P1,Leo")

	assert.ErrorIs(t, err, zoo.ErrMalformedCommand)
	assert.Equal(t, []string{"Error: Feed Animal expects 4 fields, got 3"}, lines)
}

// =============================================================================
// ANIMAL VISITATION
// =============================================================================

func TestAnimalVisitation_Personnel_CleansHabitat(t *testing.T) {
	f := newFixture(t, nil)

	lines, err := f.exec(t, "Animal Visitation,P1,Leo")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Bob attempts to clean Leo's habitat.",
		"Bob started cleaning Leo's habitat.",
		"Cleaning Leo's habitat: Removing bones and refreshing sand.",
	}, lines)
}

func TestAnimalVisitation_Visitor(t *testing.T) {
	f := newFixture(t, nil)

	lines, err := f.exec(t, "Animal Visitation,V1,Koko")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Alice tried  to register for a visit to Koko.",
		"Alice successfully visited Koko.",
	}, lines)
}

func TestAnimalVisitation_UnknownAnimal_NoticeThenError(t *testing.T) {
	f := newFixture(t, nil)

	lines, err := f.exec(t, "Animal Visitation,V1,Nemo")

	assert.True(t, zoo.IsNotFound(err))
	assert.Equal(t, []string{
		"Alice tried  to register for a visit to Nemo.",
		"Error: There are no animals with the name Nemo.",
	}, lines)
}

// =============================================================================
// LIST FOOD STOCK / UNKNOWN
// =============================================================================

func TestListFoodStock(t *testing.T) {
	f := newFixture(t, map[generic.Category]string{"Meat": "12.5", "Fish": "3"})

	lines, err := f.exec(t, "List Food Stock")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Listing available Food Stock:",
		"Plant: 0.000 kgs",
		"Fish: 3.000 kgs",
		"Meat: 12.500 kgs",
	}, lines)
}

func TestUnknownCommand_NoticeOnly(t *testing.T) {
	f := newFixture(t, map[generic.Category]string{"Meat": "30"})

	lines, err := f.exec(t, "Dance Party,P1,Leo")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Unknown command."}, lines)
	assert.Equal(t, "30.000", stockOf(t, f.ledger, "Meat"))
}

// =============================================================================
// RUN
// =============================================================================

func TestDispatcherRun_FailureDoesNotStopLaterCommands(t *testing.T) {
	f := newFixture(t, map[generic.Category]string{"Meat": "12"})
	commands := strings.Join([]string{
		"Feed Animal,V1,Leo,1",
		"Feed Animal,P1,Leo,5",
		"",
		"Feed Animal,P1,Leo,2",
		"List Food Stock",
	}, "\n")

	n, err := f.dispatcher.Run(context.Background(), strings.NewReader(commands))

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, f.journal.Close())
	log := f.out.String()
	assert.Equal(t, 4, strings.Count(log, "***Processing new Command***"))
	assert.Contains(t, log, "Error: Visitors do not have the authority to feed animals.\n")
	assert.Contains(t, log, "Error: Not enough Meat\n")
	assert.Contains(t, log, "Leo has been given 10.000 kgs of meat\n")
	assert.Contains(t, log, "Meat: 2.000 kgs\n")
}
