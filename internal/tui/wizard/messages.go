package wizard

import (
	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/investorlens/investorlens/internal/profile"
)

// SubmissionDoneMsg carries the outcome of an analysis request back into
// the event loop. seq ties it to the submission that started it.
type SubmissionDoneMsg struct {
	seq    int
	Result *analysis.Result
	Err    error
}

// LongTextEditedMsg is sent when the external editor returns.
type LongTextEditedMsg struct {
	Key     profile.Key
	Content string
	Err     error
}
