package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// identityFromContext resolves the acting user's display identity from JWT
// claims. Initiator and decider fields are always authenticated identities,
// never caller-supplied strings.
func identityFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	fullName, ok := claims["full_name"].(string)
	if !ok || fullName == "" {
		return "", fmt.Errorf("full_name claim is missing or invalid")
	}

	return fullName, nil
}
