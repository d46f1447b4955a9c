package core

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RemoteErrorKind distinguishes the two user-facing failure presentations of
// the completion backend.
type RemoteErrorKind int

const (
	// KindUnavailable covers network failures, unknown models, timeouts and
	// empty responses. The orchestrator answers from canned responses.
	KindUnavailable RemoteErrorKind = iota
	// KindCredential covers API-key rejections. The orchestrator shows a
	// fixed support notice instead of a canned answer.
	KindCredential
)

// RemoteError wraps any failure of the Gemini completion call, classified by
// kind. It is the only error type Complete returns.
type RemoteError struct {
	Kind RemoteErrorKind
	Err  error
}

func (e *RemoteError) Error() string {
	if e.Kind == KindCredential {
		return fmt.Sprintf("remote completion credential error: %v", e.Err)
	}
	return fmt.Sprintf("remote completion unavailable: %v", e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsCredentialError reports whether err is a RemoteError caused by a rejected
// or missing API credential.
func IsCredentialError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == KindCredential
}

// classifyRemoteErr maps a transport error to a RemoteError. Classification
// relies on structured status codes from the googleapi and gRPC layers, never
// on matching error message text.
func classifyRemoteErr(err error) *RemoteError {
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 401 || gerr.Code == 403 {
			return &RemoteError{Kind: KindCredential, Err: err}
		}
		return &RemoteError{Kind: KindUnavailable, Err: err}
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return &RemoteError{Kind: KindCredential, Err: err}
		}
	}

	return &RemoteError{Kind: KindUnavailable, Err: err}
}
