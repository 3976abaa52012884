package catalog

import "sort"

// DescendantNames returns the names of every transitive child of name in
// depth-first pre-order: each child is followed by its own subtree before
// the next sibling. Siblings are visited in name order. name itself is not
// included.
func DescendantNames(all []Category, name string) []string {
	children := make(map[string][]string)
	for _, c := range all {
		if c.ParentName != nil {
			children[*c.ParentName] = append(children[*c.ParentName], c.Name)
		}
	}
	for _, names := range children {
		sort.Strings(names)
	}

	var result []string
	visited := map[string]bool{name: true}

	// Stack of names still to visit; pushed in reverse so the smallest
	// sibling is popped first.
	stack := reversed(children[name])
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, current)
		stack = append(stack, reversed(children[current])...)
	}

	return result
}

func reversed(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}
