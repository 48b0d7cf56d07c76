package core

import "sort"

// Collection is an ordered set of articles. The order of the underlying
// slice is the original scan order, which all sorts preserve for ties.
// Operations never mutate the receiver; they return derived collections.
type Collection []Article

// Published returns the collection without drafts.
func (c Collection) Published() Collection {
	out := make(Collection, 0, len(c))
	for _, a := range c {
		if !a.Draft {
			out = append(out, a)
		}
	}
	return out
}

// SortedByDate returns the collection in descending date order.
// Articles with equal dates keep their relative input order.
func (c Collection) SortedByDate() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Recent returns the n most recent articles.
func (c Collection) Recent(n int) Collection {
	sorted := c.SortedByDate()
	if n < 0 || n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Featured returns articles flagged as featured, most recent first.
func (c Collection) Featured() Collection {
	out := make(Collection, 0, len(c))
	for _, a := range c {
		if a.Featured {
			out = append(out, a)
		}
	}
	return out.SortedByDate()
}

// ByCategory returns articles with the given category tag.
func (c Collection) ByCategory(category string) Collection {
	out := make(Collection, 0, len(c))
	for _, a := range c {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// ByTag returns articles carrying the given tag.
func (c Collection) ByTag(tag string) Collection {
	var out Collection
	for _, a := range c {
		for _, t := range a.Tags {
			if t == tag {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Get looks up an article by ID.
func (c Collection) Get(id string) (Article, error) {
	for _, a := range c {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}

// GroupedArticles pairs a taxonomy entry with its member articles.
type GroupedArticles struct {
	Group    Group
	Articles Collection
}

// ByGroup clusters the collection under the given taxonomy entries, ordered
// by Group.Order. Articles whose group key matches no taxonomy entry are
// omitted; a dangling reference degrades to invisibility rather than failing
// the build. Groups with no members are skipped.
func (c Collection) ByGroup(groups []Group) []GroupedArticles {
	ordered := make([]Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	var out []GroupedArticles
	for _, g := range ordered {
		members := make(Collection, 0)
		for _, a := range c {
			if a.Group == g.ID {
				members = append(members, a)
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, GroupedArticles{Group: g, Articles: members.SortedByDate()})
	}
	return out
}

// UnknownGroups returns the distinct group keys referenced by articles but
// missing from the given taxonomy, in first-seen order. The build drops such
// articles from grouped views silently; this exists so a linting pass can
// surface them.
func (c Collection) UnknownGroups(groups []Group) []string {
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, a := range c {
		if a.Group == "" || known[a.Group] || seen[a.Group] {
			continue
		}
		seen[a.Group] = true
		out = append(out, a.Group)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c Collection) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range c {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}
