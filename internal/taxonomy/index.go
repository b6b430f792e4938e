// Package taxonomy builds the gear and ship-type index used to resolve gear
// tags to their position under the fishing and non_fishing roots.
package taxonomy

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// Root categories.
const (
	Fishing    = "fishing"
	NonFishing = "non_fishing"
	Unknown    = "unknown"
)

// MaxDepth is the number of levels allowed below a root category.
const MaxDepth = 4

var (
	ErrDuplicateTag = eris.New("duplicate tag")
	ErrReservedTag  = eris.New("reserved tag")
	ErrInvalidTag   = eris.New("invalid tag")
	ErrTooDeep      = eris.New("taxonomy too deep")
)

// Index maps every tag to its path from the root category down to the tag
// itself. It is immutable after Build and safe for concurrent use.
type Index struct {
	paths map[string][]string
}

// Build walks tree and records the path of every declared tag. A tag declared
// twice, a tag using a reserved name, and nesting deeper than MaxDepth are
// all rejected.
func Build(tree Tree) (*Index, error) {
	idx := &Index{paths: make(map[string][]string)}

	roots := []struct {
		name  string
		nodes []Node
	}{
		{Fishing, tree.Fishing},
		{NonFishing, tree.NonFishing},
	}
	for _, r := range roots {
		if err := idx.walk([]string{r.name}, r.nodes); err != nil {
			return nil, err
		}
	}

	idx.paths[Fishing] = []string{Fishing}
	idx.paths[NonFishing] = []string{NonFishing}
	return idx, nil
}

func (idx *Index) walk(parent []string, nodes []Node) error {
	for _, n := range nodes {
		if err := checkName(n.Name); err != nil {
			return eris.Wrapf(err, "taxonomy: tag %q under %s", n.Name, strings.Join(parent, "/"))
		}

		path := append(slices.Clone(parent), n.Name)
		if len(path)-1 > MaxDepth {
			return eris.Wrapf(ErrTooDeep, "taxonomy: tag %q at %s exceeds %d levels", n.Name, strings.Join(path, "/"), MaxDepth)
		}
		if prev, ok := idx.paths[n.Name]; ok {
			return eris.Wrapf(ErrDuplicateTag, "taxonomy: tag %q declared at %s and %s",
				n.Name, strings.Join(prev, "/"), strings.Join(path, "/"))
		}
		idx.paths[n.Name] = path

		if err := idx.walk(path, n.Children); err != nil {
			return err
		}
	}
	return nil
}

func checkName(name string) error {
	switch name {
	case "", Fishing, NonFishing, Unknown:
		return ErrReservedTag
	}
	if strings.ContainsAny(name, "| \t\r\n") {
		return ErrInvalidTag
	}
	return nil
}

// Path returns the root-to-tag path. Unknown tags, "unknown" and the empty
// tag have no path.
func (idx *Index) Path(tag string) ([]string, bool) {
	p, ok := idx.paths[tag]
	if !ok {
		return nil, false
	}
	return slices.Clone(p), true
}

// Root returns the root category a tag belongs to.
func (idx *Index) Root(tag string) (string, bool) {
	p, ok := idx.paths[tag]
	if !ok {
		return "", false
	}
	return p[0], true
}

// Contains reports whether tag resolves to a path.
func (idx *Index) Contains(tag string) bool {
	_, ok := idx.paths[tag]
	return ok
}

// Tags returns every resolvable tag, roots included, sorted.
func (idx *Index) Tags() []string {
	tags := make([]string, 0, len(idx.paths))
	for t := range idx.paths {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// Len returns the number of resolvable tags.
func (idx *Index) Len() int {
	return len(idx.paths)
}
