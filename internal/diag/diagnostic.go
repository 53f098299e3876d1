package diag

import "fmt"

// Note attaches secondary context to a diagnostic.
type Note struct {
	Subject string
	Msg     string
}

// Diagnostic is one reported composition problem. Subject names the unit
// or class the diagnostic is about; there are no source spans because the
// engine consumes an already-resolved unit graph.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
	Notes    []Note
}

// WithNote returns a copy with an extra note appended.
func (d Diagnostic) WithNote(subject, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Subject: subject, Msg: msg})
	return d
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s[%s] %s: %s", d.Severity, d.Code, d.Subject, d.Message)
}
