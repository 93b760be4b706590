// Package testutil provides utilities for testing
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"nichefold/internal/prompt"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandomString generates a random string of given length
func RandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rng.Intn(len(charset))]
	}
	return string(b)
}

// RandomClientName generates a valid client folder name
func RandomClientName() string {
	prefixes := []string{"Smith", "Acme", "Globex", "Blue Harbor", "Northwind", "O'Neil & Co"}
	suffixes := []string{"Realty", "Travel", "Books", "Store", "Partners", "LLC"}
	return fmt.Sprintf("%s %s %s",
		prefixes[rng.Intn(len(prefixes))],
		suffixes[rng.Intn(len(suffixes))],
		RandomString(4),
	)
}

// RandomInvalidClientName returns a name carrying at least one forbidden
// character at a random position.
func RandomInvalidClientName() string {
	bad := string(prompt.ForbiddenChars[rng.Intn(len(prompt.ForbiddenChars))])
	name := RandomString(6)
	i := rng.Intn(len(name) + 1)
	return name[:i] + bad + name[i:]
}

// RandomPadding surrounds s with random spaces and tabs
func RandomPadding(s string) string {
	pad := func() string {
		return strings.Repeat(" ", rng.Intn(3)) + strings.Repeat("\t", rng.Intn(2))
	}
	return pad() + s + pad()
}
