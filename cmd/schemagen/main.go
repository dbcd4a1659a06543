// Command schemagen writes the JSON Schemas of the agent configuration, the
// UI block and every component data variant.
//
// Usage:
//
//	schemagen -out spec
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/schema"
)

func main() {
	out := flag.String("out", "spec", "output directory")
	flag.Parse()

	paths, err := schema.Write(*out)
	if err != nil {
		log.Fatalf("generate schemas: %v", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
