package cliargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var optTitleCases = []struct {
	about     string
	cfg       OptCfg
	wantHead  int
	wantTitle string
}{{
	about:     "single short name",
	cfg:       OptCfg{Names: []string{"f"}},
	wantHead:  0,
	wantTitle: "-f",
}, {
	about:     "single long name",
	cfg:       OptCfg{Names: []string{"foo"}},
	wantHead:  0,
	wantTitle: "--foo",
}, {
	about:     "short and long name",
	cfg:       OptCfg{Names: []string{"f", "foo"}},
	wantHead:  0,
	wantTitle: "-f, --foo",
}, {
	about:     "long before short",
	cfg:       OptCfg{Names: []string{"foo", "f"}},
	wantHead:  0,
	wantTitle: "--foo, -f",
}, {
	about:     "argument display name is appended",
	cfg:       OptCfg{Names: []string{"f", "foo"}, ArgInHelp: "<n>"},
	wantHead:  0,
	wantTitle: "-f, --foo <n>",
}, {
	about:     "empty names shift and widen for alignment",
	cfg:       OptCfg{Names: []string{"", "", "f", "", "foo-bar", ""}, ArgInHelp: "<num>"},
	wantHead:  8,
	wantTitle: "-f,     --foo-bar <num>",
}, {
	about:     "store key fallback",
	cfg:       OptCfg{StoreKey: "FooBar"},
	wantHead:  0,
	wantTitle: "--FooBar",
}, {
	about:     "single character store key fallback",
	cfg:       OptCfg{StoreKey: "F"},
	wantHead:  0,
	wantTitle: "-F",
}, {
	about:     "all empty names shift the store key",
	cfg:       OptCfg{StoreKey: "foo", Names: []string{"", ""}},
	wantHead:  8,
	wantTitle: "--foo",
}, {
	about:     "a named option does not show its store key",
	cfg:       OptCfg{StoreKey: "FooBar", Names: []string{"f"}},
	wantHead:  0,
	wantTitle: "-f",
}, {
	about:     "trailing empty name leaves no trace",
	cfg:       OptCfg{Names: []string{"foo", ""}},
	wantHead:  0,
	wantTitle: "--foo",
}}

func TestMakeOptTitle(t *testing.T) {
	for _, c := range optTitleCases {
		t.Run(c.about, func(t *testing.T) {
			head, title := makeOptTitle(c.cfg)
			assert.Equal(t, c.wantHead, head)
			assert.Equal(t, c.wantTitle, title)
		})
	}
}

func TestCreateOptsHelp(t *testing.T) {
	alignedCfg := OptCfg{
		Names:     []string{"", "", "f", "", "foo-bar", ""},
		Desc:      "The description of foo-bar.",
		ArgInHelp: "<num>",
	}

	t.Run("the indent is computed from the widest title", func(t *testing.T) {
		indent := 0
		entries := createOptsHelp([]OptCfg{alignedCfg}, &indent)
		assert.Equal(t, 33, indent)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		assert.Equal(t, 8, entries[0].firstIndent)
		assert.Equal(t, "-f,     --foo-bar <num>  The description of foo-bar.", entries[0].text)
	})

	t.Run("a wide enough given indent keeps one line", func(t *testing.T) {
		indent := 33
		entries := createOptsHelp([]OptCfg{alignedCfg}, &indent)
		assert.Equal(t, "-f,     --foo-bar <num>  The description of foo-bar.", entries[0].text)
	})

	t.Run("a too narrow indent pushes the description down", func(t *testing.T) {
		indent := 32
		entries := createOptsHelp([]OptCfg{alignedCfg}, &indent)
		assert.Equal(t,
			"-f,     --foo-bar <num>\n"+spaces(32)+"The description of foo-bar.",
			entries[0].text)
	})

	t.Run("wildcard and nameless configurations are skipped", func(t *testing.T) {
		indent := 0
		entries := createOptsHelp([]OptCfg{
			{StoreKey: "*"},
			{},
			{Names: []string{"foo"}},
		}, &indent)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		assert.Equal(t, "--foo", entries[0].text)
	})

	t.Run("widths are measured in display cells", func(t *testing.T) {
		indent := 0
		entries := createOptsHelp([]OptCfg{
			{Names: []string{"opt"}, ArgInHelp: "<値>", Desc: "wide argument"},
			{Names: []string{"o"}, Desc: "narrow"},
		}, &indent)
		assert.Equal(t, 12, indent)
		assert.Equal(t, "--opt <値>  wide argument", entries[0].text)
		assert.Equal(t, "-o          narrow", entries[1].text)
	})
}

func TestHelpString(t *testing.T) {
	cfgs := []OptCfg{
		{Names: []string{"f", "foo-bar"}, Desc: "The foo-bar flag.", ArgInHelp: "<num>"},
		{Names: []string{"b"}, Desc: "The baz flag."},
	}
	help := NewHelp()
	help.AddText("This is the usage of app.")
	help.AddOptsWithMargins(cfgs, 2, 0)

	want := "This is the usage of app.\n" +
		"  -f, --foo-bar <num>  The foo-bar flag.\n" +
		"  -b                   The baz flag.\n"
	assert.Equal(t, want, help.String())
}

func TestHelpMargins(t *testing.T) {
	help := NewHelpWithMargins(2, 0)
	help.AddText("TITLE")
	help.AddTextWithMargins("indented", 3, 0)
	help.AddOpts([]OptCfg{{Names: []string{"x"}, Desc: "an x"}})

	want := "  TITLE\n" +
		"     indented\n" +
		"  -x  an x\n"
	assert.Equal(t, want, help.String())
}

func TestHelpMultiLineText(t *testing.T) {
	help := NewHelpWithMargins(1, 0)
	help.AddText("a\n\nb")

	// empty lines carry no margin spaces
	assert.Equal(t, " a\n\n b\n", help.String())
}

func TestHelpGivenIndent(t *testing.T) {
	cfg := OptCfg{Names: []string{"foo-bar"}, Desc: "Long description.", ArgInHelp: "<n>"}

	t.Run("fits on one line", func(t *testing.T) {
		help := NewHelp()
		help.AddOptsWithIndent([]OptCfg{cfg}, 15)
		assert.Equal(t, "--foo-bar <n>  Long description.\n", help.String())
	})

	t.Run("wraps onto the next line", func(t *testing.T) {
		help := NewHelp()
		help.AddOptsWithIndent([]OptCfg{cfg}, 10)
		assert.Equal(t, "--foo-bar <n>\n          Long description.\n", help.String())
	})

	t.Run("wrapped lines keep the block margin", func(t *testing.T) {
		help := NewHelp()
		help.AddOptsWithIndentAndMargins([]OptCfg{cfg}, 10, 2, 0)
		assert.Equal(t, "  --foo-bar <n>\n            Long description.\n", help.String())
	})
}

func TestHelpHeadSpacesAreRendered(t *testing.T) {
	help := NewHelp()
	help.AddOpts([]OptCfg{
		{Names: []string{"", "foo"}, Desc: "shifted"},
	})

	// the leading empty name shifts the title right
	assert.Equal(t, "    --foo  shifted\n", help.String())
}
