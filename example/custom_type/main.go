package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/canoriz/cliargs"
)

// addr takes one option argument of form host:port.
// Any field type whose pointer implements cliargs.OptParser parses its
// option argument itself.
type addr struct {
	Host string
	Port int
}

func (a *addr) FromString(s string) error {
	host, port, found := strings.Cut(s, ":")
	if !found {
		return fmt.Errorf("%s is not of form host:port", s)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return err
	}
	a.Host, a.Port = host, p
	return nil
}

// Options holds one option per exported field.
// The field name is the store key; names, defaults, description and
// argument display name come from the tags.
type Options struct {
	Verbose bool    `cfg:"v,verbose" desc:"print more"`
	Name    string  `cfg:"n,name=you" desc:"your name" arg:"<name>"`
	Retries int     `cfg:"retries=3" desc:"retry count" arg:"<num>"`
	Ports   []int   `cfg:"p,port=[80,443]" desc:"ports to listen" arg:"<port>"`
	Tag     *string `cfg:"tag" desc:"optional tag, nil when absent"`
	Server  addr    `cfg:"server=localhost:80" desc:"server address" arg:"<host:port>"`

	// a config file option; the file is watched and Conf reloads on changes
	Conf cliargs.FileOpt[map[string]any, cliargs.EnableLiveUpdate] `cfg:"conf" desc:"config file" arg:"<file>"`
}

func main() {
	var options Options

	cmd := cliargs.NewCmd()
	if err := cliargs.ParseFor(&cmd, &options); err != nil {
		fmt.Printf("error: %v\n", err)
		printHelp(&cmd)
		return
	}

	fmt.Printf("%v\n", prettyPrint(&options))
	fmt.Printf("server: %v:%v\n", options.Server.Host, options.Server.Port)

	if cmd.HasOpt("Conf") {
		fmt.Printf("%v\n", prettyPrint(options.Conf.Get()))
		for range options.Conf.UpdateEvents() {
			fmt.Printf("%v\n", prettyPrint(options.Conf.Get()))
		}
	}
}

func printHelp(cmd *cliargs.Cmd) {
	help := cliargs.NewHelp()
	help.AddText(fmt.Sprintf("Usage: %s [OPTIONS]", cmd.Name))
	help.AddText("\nOPTIONS:")
	help.AddOptsWithMargins(cmd.Cfgs, 2, 0)
	help.Print()
}

func prettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "  ")
	return string(s)
}
