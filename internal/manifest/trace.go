package manifest

import (
	"fmt"

	"weave/internal/member"
)

// TraceBody synthesizes a member body that reports which providers ran.
// A non-delegating body returns its label; a delegating body calls the
// next provider and prepends itself, so a full chain renders as
// "B.log -> A.log -> Base.log". A delegating body with no provider
// behind it surfaces the dispatch error unchanged.
func TraceBody(label string, delegates bool) member.Body {
	return func(call *member.Call) (member.Value, error) {
		if !delegates {
			return label, nil
		}
		rest, err := call.Next()
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("%s -> %v", label, rest), nil
	}
}
