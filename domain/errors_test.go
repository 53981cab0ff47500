package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err      error
		expected ErrorKind
	}{
		{err: ErrInvalidCredentials, expected: KindUnauthenticated},
		{err: ErrTokenExpired, expected: KindUnauthenticated},
		{err: ErrTokenRevoked, expected: KindUnauthenticated},
		{err: ErrCredentialConsumed, expected: KindUnauthenticated},
		{err: ErrSessionExpired, expected: KindUnauthenticated},
		{err: ErrTokenMalformed, expected: KindInvalidArgument},
		{err: ErrWeakPassword, expected: KindInvalidArgument},
		{err: ErrSamePassword, expected: KindInvalidArgument},
		{err: ErrInvalidAvatar, expected: KindInvalidArgument},
		{err: ErrEmptyName, expected: KindInvalidArgument},
		{err: ErrExchangeDenied, expected: KindPermissionDenied},
		{err: ErrEmailNotVerified, expected: KindPermissionDenied},
		{err: ErrOriginNotAllowed, expected: KindPermissionDenied},
		{err: ErrAccountNotFound, expected: KindNotFound},
		{err: ErrProfileNotFound, expected: KindNotFound},
		{err: ErrEmailAlreadyInUse, expected: KindConflict},
		{err: errors.New("database exploded"), expected: KindInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected)+"/"+tt.err.Error(), func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf(%v): expected %s, got %s", tt.err, tt.expected, got)
			}
		})
	}
}

func TestKindOfUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("redeem failed: %w", ErrCredentialConsumed)
	if got := KindOf(wrapped); got != KindUnauthenticated {
		t.Errorf("expected unauthenticated for wrapped sentinel, got %s", got)
	}
}
