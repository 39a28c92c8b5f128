package art

import (
	"fmt"
	"math"
	"strings"

	"github.com/sethgrid/bolita/internal/conditions"
	"github.com/sethgrid/bolita/internal/pet"
)

const (
	DefaultBarWidth = 20

	Legend = "f: feed | j: play | l: clean | d: sleep | q: quit"

	barFull  = "█"
	barEmpty = "░"
)

// BarWidth is the number of filled cells for value on a width-cell bar.
func BarWidth(value float64, width int) int {
	if width <= 0 || math.IsNaN(value) {
		return 0
	}
	filled := int(math.Round(value / 100 * float64(width)))
	if filled < 0 {
		return 0
	}
	if filled > width {
		return width
	}
	return filled
}

func Bar(value float64, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	filled := BarWidth(value, width)
	return "[" + strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled) + "]"
}

// Face picks the art for the pet's primary condition.
func Face(primary conditions.Condition) string {
	switch primary {
	case conditions.CondHungry:
		return getHungryDog()
	case conditions.CondTired:
		return getTiredDog()
	case conditions.CondSad:
		return getSadDog()
	case conditions.CondDirty:
		return getDirtyDog()
	default:
		return getHappyDog()
	}
}

type PanelOptions struct {
	BarWidth   int
	ShowHealth bool
	Health     float64
	ShowLegend bool
}

// Panel renders a snapshot as the text equivalent of the game window:
// status line on top, the face, one bar per attribute, then the key legend.
func Panel(snap pet.Snapshot, opts PanelOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n\n", snap.Name, snap.Status)
	b.WriteString(Face(snap.Primary))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value float64
	}{
		{"Hunger", snap.Hunger},
		{"Energy", snap.Energy},
		{"Happiness", snap.Happiness},
		{"Dirtiness", snap.Dirtiness},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-10s %s %5.1f\n", r.label+":", Bar(r.value, opts.BarWidth), r.value)
	}

	if opts.ShowHealth {
		fmt.Fprintf(&b, "%-10s %s %5.1f\n", "Health:", Bar(opts.Health, opts.BarWidth), opts.Health)
	}
	if opts.ShowLegend {
		b.WriteString("\n")
		b.WriteString(Legend)
		b.WriteString("\n")
	}

	return b.String()
}

func getHappyDog() string {
	return ` / \__
(    @\___
 /         O
/   (_____/
/_____/   U`
}

func getHungryDog() string {
	return ` / \__
(    o\___
 /         O
/   (_____/  ~food?~
/_____/   ()`
}

func getTiredDog() string {
	return ` / \__
(    -\___   z
 /         O  z
/   (_____/
/_____/   U`
}

func getSadDog() string {
	return ` / \__
(    ;\___
 /         O
/   (_____/
/_____/   n`
}

func getDirtyDog() string {
	return ` / \__  ~
(    @\___  ~
 /  .  .   O
/ . (_____/
/_____/ . U`
}
