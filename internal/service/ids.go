package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/chihom/internal/apperr"
)

// ParseRecipeIDs parses a comma separated id list such as "1,2,5". Blank
// pieces are skipped; anything else that is not an integer is an
// apperr.ErrInvalid error.
func ParseRecipeIDs(raw string) ([]int, error) {
	ids := []int{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, apperr.Invalid(fmt.Errorf("invalid id %q", p))
		}
		ids = append(ids, n)
	}
	return ids, nil
}
