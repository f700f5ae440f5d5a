package manifest

// Group holds every record sharing one content hash, in manifest order.
type Group struct {
	Hash    string
	Records []Record
}

// IsDuplicate reports whether the group has more than one member.
func (g Group) IsDuplicate() bool {
	return len(g.Records) > 1
}

// GroupByHash partitions records by hash. Groups are returned in the order
// their hash first appears, and each group's records keep manifest order.
// Single-member groups are included; callers skip them.
func GroupByHash(records []Record) []Group {
	index := make(map[string]int, len(records))
	groups := make([]Group, 0, len(records))
	for _, record := range records {
		i, ok := index[record.Hash]
		if !ok {
			i = len(groups)
			index[record.Hash] = i
			groups = append(groups, Group{Hash: record.Hash})
		}
		groups[i].Records = append(groups[i].Records, record)
	}
	return groups
}
