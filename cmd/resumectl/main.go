// Command resumectl renders resumes and runs the LLM flows from a terminal.
//
//	resumectl render resume.yaml
//	resumectl tailor --resume resume.txt --jd posting.html --title "Staff Engineer"
package main

import (
	"os"

	"resume-builder/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		telemetry.Close()
		os.Exit(1)
	}
	telemetry.Close()
}
