package goIdentity

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindClassification(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{ErrInvalidRequest, KindBadRequest},
		{ErrInvalidRole, KindBadRequest},
		{ErrPasswordPolicy, KindBadRequest},
		{ErrAccountExists, KindConflict},
		{ErrDuplicateEmail, KindConflict},
		{ErrUnauthorized, KindUnauthorized},
		{ErrInvalidCredentials, KindUnauthorized},
		{ErrPermissionDenied, KindForbidden},
		{ErrAccountNotFound, KindNotFound},
		{errors.New("backend down"), KindInternal},
		{nil, KindInternal},
	}

	for _, tc := range cases {
		name := "nil"
		if tc.err != nil {
			name = tc.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			if got := Kind(tc.err); got != tc.want {
				t.Fatalf("Kind(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestKindSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrAccountExists)
	if got := Kind(wrapped); got != KindConflict {
		t.Fatalf("Kind(wrapped) = %v, want KindConflict", got)
	}
}
