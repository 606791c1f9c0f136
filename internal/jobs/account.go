package jobs

import (
	"context"
	"fmt"
	"strings"

	"agentbot/internal/logging"
)

// AccountResolver maps a username to its account id.
type AccountResolver interface {
	ResolveAccountID(ctx context.Context, username string) (string, error)
}

// ResolveAccount returns configuredID when set, otherwise looks the id up by
// username.
func ResolveAccount(ctx context.Context, resolver AccountResolver, configuredID, username string) (string, error) {
	if id := strings.TrimSpace(configuredID); id != "" {
		return id, nil
	}
	id, err := resolver.ResolveAccountID(ctx, username)
	if err != nil {
		return "", fmt.Errorf("resolve account @%s: %w", strings.TrimPrefix(username, "@"), err)
	}
	logging.Info("account_resolved", map[string]any{"username": username, "id": id})
	return id, nil
}
