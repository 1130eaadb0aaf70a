// Package render turns generated loot into console text
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

// Rarity tag colors
var (
	UncommonColor = lipgloss.Color("#2196F3")
	RareColor     = lipgloss.Color("#FFC107")
	FailureColor  = lipgloss.Color("#e53935")
)

// Options configures a Formatter
type Options struct {
	// Styled colors rarity tags and failures; leave false for plain text
	Styled bool
}

// Formatter renders items and generation output. It holds no per-call state
// so the same item always renders to the same text.
type Formatter struct {
	styled   bool
	uncommon lipgloss.Style
	rare     lipgloss.Style
	failure  lipgloss.Style
}

// New creates a formatter
func New(opts Options) *Formatter {
	return &Formatter{
		styled:   opts.Styled,
		uncommon: lipgloss.NewStyle().Foreground(UncommonColor),
		rare:     lipgloss.NewStyle().Foreground(RareColor).Bold(true),
		failure:  lipgloss.NewStyle().Foreground(FailureColor),
	}
}

// Item renders one item as
//
//	armor > light_armor: masterwork Leather Armor [rare] (10 gp)
func (f *Formatter) Item(item loot.Item) string {
	var b strings.Builder

	if len(item.Breadcrumb) > 0 {
		b.WriteString(strings.Join(item.Breadcrumb, " > "))
		b.WriteString(": ")
	}
	for _, m := range item.Modifiers {
		b.WriteString(m)
		b.WriteByte(' ')
	}
	b.WriteString(item.Name)

	if tag := f.rarityTag(item.Rarity); tag != "" {
		b.WriteByte(' ')
		b.WriteString(tag)
	}

	b.WriteByte(' ')
	b.WriteString(Value(item))

	return b.String()
}

// Value renders an item's worth, showing the rolled coin amount first when
// it was rolled in another denomination
func Value(item loot.Item) string {
	gold := Gold(item.Value) + " gp"
	if item.Display == nil {
		return "(" + gold + ")"
	}
	return fmt.Sprintf("%s %s (%s)", Gold(item.Display.Amount), item.Display.Unit, gold)
}

// Gold formats an amount with at most two decimals and no trailing zeros
func Gold(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Rolls renders accepted rolls grouped by set index. Single-item sets take one
// line; larger sets get a header and one indented line per member.
func (f *Formatter) Rolls(rolls []loot.Roll) string {
	var b strings.Builder

	for start := 0; start < len(rolls); {
		end := start + 1
		for end < len(rolls) && rolls[end].SetIndex == rolls[start].SetIndex {
			end++
		}
		group := rolls[start:end]

		if len(group) == 1 {
			fmt.Fprintf(&b, "%d. %s\n", group[0].SetIndex, f.Item(group[0].Item))
		} else {
			total := 0.0
			for _, r := range group {
				total += r.Item.Value
			}
			fmt.Fprintf(&b, "%d. set of %d items (%s gp)\n", group[0].SetIndex, len(group), Gold(total))
			for _, r := range group {
				fmt.Fprintf(&b, "   - %s\n", f.Item(r.Item))
			}
		}

		start = end
	}

	return b.String()
}

// Failure renders a slot that could not be filled
func (f *Formatter) Failure(failure loot.Failure) string {
	line := fmt.Sprintf("slot %d: %s after %d attempts", failure.Slot, failure.Reason, failure.Attempts)
	if f.styled {
		return f.failure.Render(line)
	}
	return line
}

// Output renders a whole generation: the rolls, then the total
func (f *Formatter) Output(rolls []loot.Roll, total float64) string {
	if len(rolls) == 0 {
		return "no loot generated\n"
	}
	return f.Rolls(rolls) + fmt.Sprintf("Total: %s gp\n", Gold(total))
}

func (f *Formatter) rarityTag(r loot.Rarity) string {
	var style lipgloss.Style
	switch r {
	case loot.RarityUncommon:
		style = f.uncommon
	case loot.RarityRare:
		style = f.rare
	default:
		return ""
	}

	tag := "[" + string(r) + "]"
	if f.styled {
		return style.Render(tag)
	}
	return tag
}
