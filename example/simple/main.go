package main

import (
	"encoding/json"
	"fmt"

	"github.com/canoriz/cliargs"
)

// This program parses its arguments without any configuration.
// Try for example:
//
//	simple --foo-bar=abc -d -ef ghi -- --not-an-option
//
// Options are stored under their own names; everything else is a
// command argument.
func main() {
	cmd := cliargs.NewCmd()
	if err := cmd.Parse(); err != nil {
		// parsing went on after the error, the valid part is kept
		fmt.Printf("error: %v\n", err)
	}

	view := map[string]any{
		"name": cmd.Name,
		"args": cmd.Args(),
	}
	for _, name := range []string{"foo-bar", "d", "e", "f"} {
		if cmd.HasOpt(name) {
			view[name] = cmd.OptArgs(name)
		}
	}
	fmt.Printf("%v\n", prettyPrint(view))

	// subcommands: stop at the first command argument instead
	//
	// sub, err := cmd.ParseUntilSubCmd()
	// if sub != nil {
	// 	err = sub.Parse()
	// 	fmt.Printf("subcommand %v, args %v\n", sub.Name, sub.Args())
	// }
}

func prettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "  ")
	return string(s)
}
