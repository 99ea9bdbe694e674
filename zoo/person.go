package zoo

import (
	"context"
	"fmt"

	"github.com/warp/zoo-engine/generic"
)

// Role gates what a person may do to an animal. Only Personnel feed and clean.
type Role string

const (
	Visitor   Role = "Visitor"
	Personnel Role = "Personnel"
)

// ParseRole returns ErrUnknownRole for anything other than Visitor or Personnel.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case Visitor, Personnel:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

type Person struct {
	Name string
	ID   string
	Role Role
}

func (p Person) CanFeed() bool { return p.Role == Personnel }

// Visit returns the log lines for a visit. Personnel visits are cleanings.
func (p Person) Visit(a Animal) []string {
	switch p.Role {
	case Personnel:
		return []string{
			p.Name + " started cleaning " + a.Name + "'s habitat.",
			a.CleanHabitat(),
		}
	default:
		return []string{p.Name + " successfully visited " + a.Name + "."}
	}
}

// Feed returns the log lines for a feeding. Lines written before a failure
// are returned alongside the error so the caller can still record them.
// A visitor never reaches the ledger.
func (p Person) Feed(ctx context.Context, a Animal, meals int, ledger *generic.FoodLedger) ([]string, error) {
	if !p.CanFeed() {
		return nil, &UnauthorizedError{PersonID: p.ID}
	}

	lines := []string{p.Name + " attempts to feed " + a.Name + "."}
	meal, err := a.Feed(ctx, meals, ledger)
	if err != nil {
		return lines, err
	}
	return append(lines, a.DescribeMeal(meal)), nil
}

func (p Person) String() string {
	return fmt.Sprintf("%s (ID: %s)", p.Name, p.ID)
}
