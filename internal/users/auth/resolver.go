// Copyright (c) 2026 Pofol. All rights reserved.

package auth

import (
	"context"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/ctxutil"
)

// Resolver turns the claims attached to a request context back into a full
// account record.
//
// # Why re-fetch?
//
// Claims are a snapshot from the moment the credential was minted. Nickname,
// role, or the whole account may have changed since. Any handler that acts
// on the account (rather than just identifying it) must go through the
// Resolver to get current state.
type Resolver struct {
	userRepository UserRepository
}

// NewResolver constructs a [Resolver] over the account repository.
func NewResolver(userRepo UserRepository) *Resolver {
	return &Resolver{userRepository: userRepo}
}

// Current returns the full account of the acting identity.
//
// # Returns
//   - *User: The freshly loaded account.
//   - error: [apperr.Unauthorized] when the request is anonymous, or when
//     the claims reference an account that no longer exists. A dangling
//     credential is indistinguishable from an invalid one on purpose.
func (resolver *Resolver) Current(ctx context.Context) (*User, error) {
	claims := ctxutil.GetActor(ctx)
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	user, err := resolver.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}

	return user, nil
}
