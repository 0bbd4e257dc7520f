package domain

import "errors"

// ErrDraftCreate marks a rejected draft creation. The run produced no
// artifact and must exit nonzero.
var ErrDraftCreate = errors.New("draft creation rejected")

// ErrPublishTransition marks a rejected draft-to-published transition.
// The draft persists on the target, so the run still counts as having
// produced an artifact.
var ErrPublishTransition = errors.New("publish transition rejected")
