package form

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Toast texts shown after a submission.
const (
	SuccessTitle       = "You're Part of Our Love Story! 💖"
	SuccessDescription = "Thank you for your response! We can't wait to celebrate with you!"
	ErrorTitle         = "Oops! Something went wrong"
	ErrorDescription   = "Please try again or contact us directly!"
)

// Notifier renders submission feedback. Confetti must not block.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
	Confetti(d time.Duration)
}

// ConsoleNotifier prints feedback to a terminal.
type ConsoleNotifier struct {
	W io.Writer
}

func (n ConsoleNotifier) Success(title, description string) {
	fmt.Fprintf(n.W, "✔ %s\n  %s\n", title, description)
}

func (n ConsoleNotifier) Error(title, description string) {
	fmt.Fprintf(n.W, "✘ %s\n  %s\n", title, description)
}

func (n ConsoleNotifier) Confetti(d time.Duration) {
	fmt.Fprintf(n.W, "%s (%s)\n", strings.Repeat("🎉", 5), d)
}
