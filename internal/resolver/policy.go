package resolver

import (
	"cmp"
	"slices"

	"dedup/internal/manifest"
)

// SentDir is the directory name whose copies are preferred as keepers.
const SentDir = "Sent"

// Resolution is the keep/drop decision for one duplicate group.
type Resolution struct {
	Hash string
	Keep manifest.Record
	Drop []manifest.Record
	// Warn is set when a Sent copy is kept while a copy outside Sent is dropped.
	Warn bool
}

// InSent reports whether the record's immediate parent directory is named Sent.
func InSent(r manifest.Record) bool {
	return r.ParentName() == SentDir
}

// Compare orders records for keeper selection: Sent copies first, then by
// base name. Records with equal keys compare as equal so a stable sort keeps
// their manifest order.
func Compare(a, b manifest.Record) int {
	aSent, bSent := InSent(a), InSent(b)
	if aSent != bSent {
		if aSent {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Name(), b.Name())
}

// Resolve picks the keeper of a group with at least two members. The first
// record in Compare order is kept; the rest are dropped in that order.
func Resolve(group manifest.Group) (Resolution, bool) {
	if !group.IsDuplicate() {
		return Resolution{}, false
	}

	members := slices.Clone(group.Records)
	slices.SortStableFunc(members, Compare)

	res := Resolution{
		Hash: group.Hash,
		Keep: members[0],
		Drop: members[1:],
	}
	if InSent(res.Keep) {
		res.Warn = slices.ContainsFunc(res.Drop, func(r manifest.Record) bool { return !InSent(r) })
	}
	return res, true
}

// DropPaths returns the manifest paths of the dropped records.
func (r Resolution) DropPaths() []string {
	paths := make([]string, len(r.Drop))
	for i, record := range r.Drop {
		paths[i] = record.Path
	}
	return paths
}
