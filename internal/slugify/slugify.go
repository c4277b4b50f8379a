// Package slugify derives URL-safe identifiers from display names.
package slugify

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// Make folds a display name or title into a lowercase hyphenated slug.
func Make(s string) string {
	return slug.Make(s)
}

// ExistsFunc probes whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// MakeUnique derives a slug from title and, while taken, appends -1, -2, ...
// until a free one is found. It cannot fail on a title collision alone.
// The unique index on the slug field remains the backstop for the window
// between the probe and the insert.
func MakeUnique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := Make(title)
	s := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, s)
		if err != nil {
			return "", err
		}
		if !taken {
			return s, nil
		}
		s = fmt.Sprintf("%s-%d", base, i)
	}
}
