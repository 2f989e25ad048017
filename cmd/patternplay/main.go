// Command patternplay queries a mini-notation pattern over a number of
// cycles and prints the resulting events.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cbegin/cyclo"
	"github.com/cbegin/cyclo/internal/notation"
)

const defaultPattern = "bd sn bd [sn sn]"

func main() {
	var (
		patternPath   = flag.String("file", "", "path to a pattern notation file")
		patternInline = flag.String("pattern", "", "inline pattern notation")
		cycles        = flag.Int("cycles", 1, "number of cycles to query")
		startCycle    = flag.Int("start", 0, "cycle to start querying from")
		cps           = flag.Float64("cps", 1.0, "cycles per second, recorded in the query's controls")
	)
	flag.Parse()

	text, err := resolvePatternInput(*patternPath, *patternInline)
	if err != nil {
		log.Fatal(err)
	}

	cyclo.DefaultRuntime().SetParser(notation.Parse)
	pat, err := notation.Parse(text)
	if err != nil {
		log.Fatalf("parse error: %v", err)
	}

	begin := cyclo.FromInt(int64(*startCycle))
	end := begin.Add(cyclo.FromInt(int64(*cycles)))
	haps := pat.QueryArc(begin, end, map[string]any{"cps": *cps})
	for _, h := range haps {
		onset := " "
		if h.HasOnset() {
			onset = "*"
		}
		fmt.Printf("%s [%s .. %s) -> %v\n", onset, h.Part.Begin, h.Part.End, h.Value)
	}
}

func resolvePatternInput(path, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultPattern, nil
}
