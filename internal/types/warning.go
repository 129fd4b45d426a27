package types

import "fmt"

// Warning is a best-effort problem recorded during a run. Warnings never
// abort processing; they are collected into the run's warnings artifact.
type Warning struct {
	Kind    WarningKind
	Subject string
	Message string
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Subject, w.Message)
}
