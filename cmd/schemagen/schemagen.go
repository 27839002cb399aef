package main

import (
	"flag"
	"os"

	"github.com/lee-vincent/spatialschema/engine/config"
)

var args struct {
	configFile string
	method     string
}

func parseArgs() {
	flag.StringVar(&args.configFile, "configfile", "", "set config file path")
	flag.StringVar(&args.method, "method", "incremental", "generation method: incremental | full")

	flag.Parse()
}

func main() {
	parseArgs()
	if args.configFile != "" {
		config.SetConfigFile(args.configFile)
	}

	cmdArgs := flag.Args()
	if len(cmdArgs) == 0 {
		showMsg("no command to execute")
		flag.Usage()
		os.Exit(1)
	}

	cmd := cmdArgs[0]
	if cmd == "generate" {
		if len(cmdArgs) != 2 {
			showMsgAndQuit("should specify one class manifest file")
		}

		generate(cmdArgs[1], args.method)
	} else if cmd == "delete-database" {
		deleteDatabase()
	} else if cmd == "status" {
		status()
	} else {
		showMsgAndQuit("unknown command: %s", cmd)
	}
}
