/*
animal.go - Species table and animal behavior

PURPOSE:
  Every animal is one of four species. A species fixes three things:
  the meal formula, the diet split across food categories, and the text
  staff read out when they clean the habitat.

MEAL FORMULA:
  meal(age) = base + (age - pivot) * rate

  | Species    | base | pivot | rate  | diet             |
  |------------|------|-------|-------|------------------|
  | Lion       | 5.0  | 5     | 0.05  | Meat             |
  | Elephant   | 10.0 | 20    | 0.015 | Plant            |
  | Penguin    | 3.0  | 4     | 0.04  | Fish             |
  | Chimpanzee | 6.0  | 10    | 0.025 | Meat 50/Plant 50 |

FEEDING:
  Feed multiplies the meal by the meal count, splits it over the diet and
  hands the portions to the ledger in one ConsumeAll. A chimpanzee short
  on Plant gets no Meat either.

ADDING A SPECIES:
  Add a constant and a row to speciesTable; the switch in describeMeal is
  the only other place that needs a case.
*/
package zoo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/zoo-engine/generic"
)

// =============================================================================
// SPECIES
// =============================================================================

type Species string

const (
	Lion       Species = "Lion"
	Elephant   Species = "Elephant"
	Penguin    Species = "Penguin"
	Chimpanzee Species = "Chimpanzee"
)

// AllSpecies lists the species the loaders accept.
var AllSpecies = []Species{Lion, Elephant, Penguin, Chimpanzee}

type speciesTraits struct {
	base     decimal.Decimal
	pivotAge int64
	rate     decimal.Decimal
	diet     []generic.Category
	cleaning string
}

var speciesTable = map[Species]speciesTraits{
	Lion: {
		base:     decimal.RequireFromString("5.0"),
		pivotAge: 5,
		rate:     decimal.RequireFromString("0.05"),
		diet:     []generic.Category{generic.CategoryMeat},
		cleaning: "Removing bones and refreshing sand.",
	},
	Elephant: {
		base:     decimal.RequireFromString("10.0"),
		pivotAge: 20,
		rate:     decimal.RequireFromString("0.015"),
		diet:     []generic.Category{generic.CategoryPlant},
		cleaning: "Washing the water area.",
	},
	Penguin: {
		base:     decimal.RequireFromString("3.0"),
		pivotAge: 4,
		rate:     decimal.RequireFromString("0.04"),
		diet:     []generic.Category{generic.CategoryFish},
		cleaning: "Replenishing ice and scrubbing walls.",
	},
	Chimpanzee: {
		base:     decimal.RequireFromString("6.0"),
		pivotAge: 10,
		rate:     decimal.RequireFromString("0.025"),
		diet:     []generic.Category{generic.CategoryMeat, generic.CategoryPlant},
		cleaning: "Sweeping the enclosure and replacing branches.",
	},
}

// ParseSpecies returns ErrUnknownSpecies for anything outside AllSpecies.
func ParseSpecies(s string) (Species, error) {
	sp := Species(s)
	if _, ok := speciesTable[sp]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
	}
	return sp, nil
}

// MealAmount is the kilograms of food one meal takes for an animal of
// this species at the given age.
func (s Species) MealAmount(age int) decimal.Decimal {
	t := speciesTable[s]
	delta := decimal.NewFromInt(int64(age) - t.pivotAge)
	return t.base.Add(delta.Mul(t.rate))
}

// Diet lists the categories a meal is split across, in equal shares.
func (s Species) Diet() []generic.Category {
	return append([]generic.Category{}, speciesTable[s].diet...)
}

// =============================================================================
// ANIMAL
// =============================================================================

// Animal holds no mutable state. Feeding only changes the ledger.
type Animal struct {
	Name    string
	Age     int
	Species Species
}

func NewAnimal(species Species, name string, age int) (Animal, error) {
	if _, ok := speciesTable[species]; !ok {
		return Animal{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
	if age < 0 {
		return Animal{}, &InvalidNumberError{Field: "age", Value: fmt.Sprint(age)}
	}
	return Animal{Name: name, Age: age, Species: species}, nil
}

func (a Animal) MealAmount() decimal.Decimal {
	return a.Species.MealAmount(a.Age)
}

// Meal is what one successful feeding handed out.
type Meal struct {
	Total    decimal.Decimal
	Portions []generic.Portion
}

// Portions splits meals worth of food across the species diet.
func (a Animal) Portions(meals int) []generic.Portion {
	total := a.MealAmount().Mul(decimal.NewFromInt(int64(meals)))
	return generic.SplitEvenly(total, a.Species.Diet()...)
}

// Feed takes meals worth of food from the ledger. On InsufficientStock
// nothing is deducted.
func (a Animal) Feed(ctx context.Context, meals int, ledger *generic.FoodLedger) (Meal, error) {
	portions := a.Portions(meals)
	if err := ledger.ConsumeAll(ctx, portions, "feed:"+a.Name); err != nil {
		return Meal{}, err
	}
	total := decimal.Zero
	for _, p := range portions {
		total = total.Add(p.Amount)
	}
	return Meal{Total: total, Portions: portions}, nil
}

// DescribeMeal renders the activity log line for a meal.
func (a Animal) DescribeMeal(m Meal) string {
	return describeMeal(a, m)
}

func describeMeal(a Animal, m Meal) string {
	given := a.Name + " has been given "
	switch a.Species {
	case Lion:
		return given + generic.FormatAmount(m.Total) + " kgs of meat"
	case Elephant:
		return given + generic.FormatAmount(m.Total) + " kgs assorted fruits and hay"
	case Penguin:
		return given + generic.FormatAmount(m.Total) + " kgs of various kinds of fish"
	case Chimpanzee:
		meat, plant := portionOf(m, generic.CategoryMeat), portionOf(m, generic.CategoryPlant)
		return given + generic.FormatAmount(meat) + " kgs of meat and " + generic.FormatAmount(plant) + " kgs of leaves"
	default:
		return given + generic.FormatAmount(m.Total) + " kgs of food"
	}
}

func portionOf(m Meal, c generic.Category) decimal.Decimal {
	for _, p := range m.Portions {
		if p.Category == c {
			return p.Amount
		}
	}
	return decimal.Zero
}

// CleanHabitat describes the cleaning routine. It touches nothing.
func (a Animal) CleanHabitat() string {
	return "Cleaning " + a.Name + "'s habitat: " + speciesTable[a.Species].cleaning
}

func (a Animal) String() string {
	return fmt.Sprintf("%s named %s aged %d", a.Species, a.Name, a.Age)
}
