// LogHunter - Log File Analysis Tool
//
// LogHunter searches, filters and summarizes plain-text log files from the
// command line.
package main

import (
	"os"

	"github.com/ccollicutt/loghunter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
