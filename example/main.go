package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/canoriz/cliargs"
)

// define one configuration per option
// a name of one character is matched as -n, longer names as --name
var cfgs = []cliargs.OptCfg{
	{
		StoreKey:  "host",
		Names:     []string{"h", "host"},
		HasArg:    true,
		Defaults:  []string{"localhost"},
		Desc:      "hostname to connect",
		ArgInHelp: "<host>",
	},
	{
		StoreKey:  "port",
		Names:     []string{"p", "port"},
		HasArg:    true,
		Defaults:  []string{"80"},
		Desc:      "port to connect",
		ArgInHelp: "<port>",
		Validator: cliargs.ValidateNumber[uint16](),
	},
	{
		Names: []string{"t", "tcp"},
		Desc:  "use tcp",
	},
	{
		StoreKey:  "names",
		Names:     []string{"n", "name"},
		HasArg:    true,
		IsArray:   true,
		Defaults:  []string{"alice", "bob"},
		Desc:      "names to greet, can be given multiple times",
		ArgInHelp: "<name>",
	},
}

func main() {
	// parse a []string first
	osArgs := append([]string{"app"}, strings.Split(
		"--host host.com -p=70 --name cindy --name david greet", " ")...)
	cmd, err := cliargs.CmdFrom(osArgs)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	parseOrExit(&cmd)
	fmt.Printf("parse []string\n")
	printResult(&cmd)

	// then parse the real command line arguments
	cmd = cliargs.NewCmd()
	parseOrExit(&cmd)
	fmt.Printf("parse command line\n")
	printResult(&cmd)
}

func parseOrExit(cmd *cliargs.Cmd) {
	if err := cmd.ParseWith(cfgs); err != nil {
		// the failed option is available without type switching
		fmt.Printf("%s (option: %s)\n\n", err, cliargs.OptionOf(err))
		printHelp(cmd)
		os.Exit(1)
	}
}

func printResult(cmd *cliargs.Cmd) {
	host, _ := cmd.OptArg("host")
	port, _ := cmd.OptArg("port")
	fmt.Printf("host: %v, port: %v, tcp: %v\n", host, port, cmd.HasOpt("t"))
	fmt.Printf("names: %v\n", cmd.OptArgs("names"))
	fmt.Printf("args: %v\n", cmd.Args())
}

func printHelp(cmd *cliargs.Cmd) {
	help := cliargs.NewHelp()
	help.AddText(fmt.Sprintf("Usage: %s [OPTIONS] [ARGS...]", cmd.Name))
	help.AddText("\nOPTIONS:")
	help.AddOptsWithMargins(cmd.Cfgs, 2, 0)
	help.Print()
}
