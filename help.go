package cliargs

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Help collects text blocks and option blocks and renders them line by
// line. Margins shift a block to the right; the right margin is kept
// for symmetry but does not change the rendered text because no line
// wrapping is done here.
type Help struct {
	marginLeft  int
	marginRight int
	blocks      []helpBlock
}

type helpBlock struct {
	marginLeft  int
	marginRight int
	lines       []string
}

// helpEntry is one option help text with the indent of its first line.
type helpEntry struct {
	firstIndent int
	text        string
}

// NewHelp makes an empty Help.
func NewHelp() Help {
	return NewHelpWithMargins(0, 0)
}

// NewHelpWithMargins makes an empty Help whose margins are added to
// every block. The right margin is reserved for word wrapping;
// rendering does not use it.
func NewHelpWithMargins(marginLeft, marginRight int) Help {
	return Help{marginLeft: marginLeft, marginRight: marginRight}
}

// AddText adds a text block rendered as it is.
func (h *Help) AddText(text string) {
	h.AddTextWithMargins(text, 0, 0)
}

// AddTextWithMargins adds a text block shifted right by the left
// margin. The right margin is reserved for word wrapping.
func (h *Help) AddTextWithMargins(text string, marginLeft, marginRight int) {
	h.blocks = append(h.blocks, helpBlock{
		marginLeft:  h.marginLeft + marginLeft,
		marginRight: h.marginRight + marginRight,
		lines:       strings.Split(text, "\n"),
	})
}

// AddOpts adds option help lines, aligning the descriptions at the
// widest option title plus two spaces.
func (h *Help) AddOpts(cfgs []OptCfg) {
	h.AddOptsWithIndentAndMargins(cfgs, 0, 0, 0)
}

// AddOptsWithIndent adds option help lines, aligning the descriptions
// at the given indent. A title too wide for the indent pushes its
// description onto the next line.
func (h *Help) AddOptsWithIndent(cfgs []OptCfg, indent int) {
	h.AddOptsWithIndentAndMargins(cfgs, indent, 0, 0)
}

// AddOptsWithMargins adds option help lines shifted right by the left
// margin.
func (h *Help) AddOptsWithMargins(cfgs []OptCfg, marginLeft, marginRight int) {
	h.AddOptsWithIndentAndMargins(cfgs, 0, marginLeft, marginRight)
}

// AddOptsWithIndentAndMargins adds option help lines with both an
// alignment indent and margins.
func (h *Help) AddOptsWithIndentAndMargins(cfgs []OptCfg, indent, marginLeft, marginRight int) {
	entries := createOptsHelp(cfgs, &indent)

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		text := spaces(entry.firstIndent) + entry.text
		lines = append(lines, strings.Split(text, "\n")...)
	}

	h.blocks = append(h.blocks, helpBlock{
		marginLeft:  h.marginLeft + marginLeft,
		marginRight: h.marginRight + marginRight,
		lines:       lines,
	})
}

// String renders all blocks, one block line per output line.
func (h *Help) String() string {
	var sb strings.Builder
	for _, block := range h.blocks {
		margin := spaces(block.marginLeft)
		for _, line := range block.lines {
			if line != "" {
				sb.WriteString(margin)
				sb.WriteString(line)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Print writes the rendered help to standard output.
func (h *Help) Print() {
	fmt.Print(h.String())
}

// createOptsHelp makes the help entry of every renderable
// configuration. When *indentRef is zero the alignment indent is
// computed from the widest title and written back; otherwise the given
// indent is kept and too wide titles push their description onto the
// next line. Widths are measured in display cells, not bytes.
func createOptsHelp(cfgs []OptCfg, indentRef *int) []helpEntry {
	indent := *indentRef

	if indent > 0 {
		entries := make([]helpEntry, 0, len(cfgs))
		for _, cfg := range cfgs {
			displayKey := cfg.storeKey()
			if displayKey == "" || displayKey == anyOption {
				continue
			}

			firstIndent, title := makeOptTitle(cfg)
			width := firstIndent + runewidth.StringWidth(title)

			text := title
			if cfg.Desc != "" {
				if width+2 > indent {
					text += "\n" + spaces(indent) + cfg.Desc
				} else {
					text += spaces(indent-width) + cfg.Desc
				}
			}
			entries = append(entries, helpEntry{firstIndent, text})
		}
		return entries
	}

	type titledCfg struct {
		entry helpEntry
		width int
		desc  string
	}

	titled := make([]titledCfg, 0, len(cfgs))
	for _, cfg := range cfgs {
		displayKey := cfg.storeKey()
		if displayKey == "" || displayKey == anyOption {
			continue
		}

		firstIndent, title := makeOptTitle(cfg)
		width := firstIndent + runewidth.StringWidth(title)
		if indent < width {
			indent = width
		}
		titled = append(titled, titledCfg{helpEntry{firstIndent, title}, width, cfg.Desc})
	}

	indent += 2
	*indentRef = indent

	entries := make([]helpEntry, 0, len(titled))
	for _, tc := range titled {
		if tc.desc != "" {
			tc.entry.text += spaces(indent-tc.width) + tc.desc
		}
		entries = append(entries, tc.entry)
	}
	return entries
}

// makeOptTitle renders the title of one option, like "-f, --foo-bar
// <num>", and the indent of its first line. Empty names shift the
// title or widen the gap after a comma so that aliases of several
// options can be kept aligned in columns.
func makeOptTitle(cfg OptCfg) (int, string) {
	headSpaces := 0
	lastSpaces := 0
	useStoreKey := true
	var title strings.Builder

	n := len(cfg.Names)
	for i, name := range cfg.Names {
		switch len(name) {
		case 0:
			if title.Len() == 0 {
				headSpaces += 4
			} else if i != n-1 {
				lastSpaces += 4
			} else {
				lastSpaces += 2
			}
		case 1:
			if lastSpaces > 0 {
				title.WriteByte(',')
				title.WriteString(spaces(lastSpaces - 1))
			}
			lastSpaces = 0
			title.WriteByte('-')
			title.WriteString(name)
			if i != n-1 {
				lastSpaces = 2
			}
			useStoreKey = false
		default:
			if lastSpaces > 0 {
				title.WriteByte(',')
				title.WriteString(spaces(lastSpaces - 1))
			}
			lastSpaces = 0
			title.WriteString("--")
			title.WriteString(name)
			if i != n-1 {
				lastSpaces = 2
			}
			useStoreKey = false
		}
	}

	if useStoreKey {
		switch len(cfg.StoreKey) {
		case 0:
		case 1:
			if lastSpaces > 0 {
				title.WriteByte(',')
				title.WriteString(spaces(lastSpaces - 1))
			}
			title.WriteByte('-')
			title.WriteString(cfg.StoreKey)
		default:
			if lastSpaces > 0 {
				title.WriteByte(',')
				title.WriteString(spaces(lastSpaces - 1))
			}
			title.WriteString("--")
			title.WriteString(cfg.StoreKey)
		}
	}

	if cfg.ArgInHelp != "" {
		title.WriteByte(' ')
		title.WriteString(cfg.ArgInHelp)
	}

	return headSpaces, title.String()
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}
