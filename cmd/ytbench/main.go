package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Pipeline stage completed
	ExitExhausted = 1 // Evaluation ran but one or more prompts never produced an accepted answer
	ExitError     = 2 // Configuration or runtime error
)

// ExhaustedError indicates the evaluation stage completed and persisted its
// artifacts, but some prompts exhausted their attempt budget without an
// accepted answer.
type ExhaustedError struct {
	Message string
}

func (e *ExhaustedError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var exhaustedErr *ExhaustedError
		if errors.As(err, &exhaustedErr) {
			os.Exit(ExitExhausted)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
