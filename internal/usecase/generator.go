package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linksnip/linksnip/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// shortCodeAlphabet is the fixed alphabet short codes are drawn from.
// 62^7 combinations make generation collisions rare; the database unique
// constraint remains the correctness backstop under concurrent creates.
const shortCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// aliasPattern bounds custom aliases: 3-20 characters, alphanumeric plus
// hyphen and underscore.
var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

// reservedAliases are route prefixes a custom alias must not shadow.
var reservedAliases = map[string]struct{}{
	"api":     {},
	"admin":   {},
	"auth":    {},
	"links":   {},
	"stats":   {},
	"search":  {},
	"shorten": {},
	"docs":    {},
	"swagger": {},
	"ping":    {},
}

func generateShortCode(length int) (string, error) {
	const op = "usecase.generateShortCode"

	code, err := gonanoid.Generate(shortCodeAlphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

// validateAlias checks a custom alias against the charset, length and
// reserved-word rules. Reserved words are matched case-insensitively since
// routing is case-insensitive for the prefixes they protect.
func validateAlias(alias string) error {
	const op = "usecase.validateAlias"

	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("%s: %w", op, entity.ErrAliasInvalid)
	}

	if _, ok := reservedAliases[strings.ToLower(alias)]; ok {
		return fmt.Errorf("%s: %w", op, entity.ErrAliasInvalid)
	}

	return nil
}
