package main

import (
	"espresso/compiler/internal"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	path  = flag.String("path", "", "the path of the json syntax tree needs to be checked")
	debug = flag.Bool("debug", false, "whether trace every visited node")
)

func main() {
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}
	_, err := internal.CompileFile(*path, internal.Options{Debug: *debug, Log: os.Stdout})
	if err != nil {
		if *debug {
			fmt.Printf("Error: %+v\n", err)
		} else {
			fmt.Printf("Error: %v\n", errors.Cause(err))
		}
		os.Exit(1)
	}
	fmt.Printf("%s: no semantic errors\n", *path)
}
