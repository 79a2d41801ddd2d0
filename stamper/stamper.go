package stamper

import (
	"fmt"
	"os"
	"strings"

	"github.com/byte4ever/emailtemplates/values"
)

// LoadStamps reads workspace status files and merges them
// into a single values tree. Each line is "KEY VALUE" with
// the first space as delimiter. Lines without a space are
// silently skipped; later files override earlier ones.
func LoadStamps(infoFiles []string) (values.Node, error) {
	const errCtx = "loading stamps"

	tree := values.Object(nil)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return values.Node{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			parts := strings.SplitN(line, " ", 2)
			if len(parts) != 2 || parts[0] == "" {
				continue
			}

			tree = values.Set(
				tree,
				strings.Split(parts[0], "."),
				values.Leaf(strings.TrimSuffix(parts[1], "\r")),
			)
		}
	}

	return tree, nil
}

