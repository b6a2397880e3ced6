package state

import "github.com/canmet-energy/h2ktohpxml/pkg/tree"

// Result buckets. The results map always carries exactly these three keys.
const (
	BucketGeneral   = "General"
	BucketSOC       = "SOC"
	BucketReference = "Reference"
)

// resultsPath locates the result-record sequence inside an H2K document.
var resultsPath = []string{"HouseFile", "AllResults", "Results"}

// SetResults scans the source tree for result records and buckets them by
// house code: "SOC" and "Reference" records land in their own buckets,
// everything else (the user house included) lands in General. Records tagged
// as upgrade variants are excluded entirely.
func (m *ModelData) SetResults(src tree.Node) {
	m.results = map[string][]tree.Node{
		BucketGeneral:   nil,
		BucketSOC:       nil,
		BucketReference: nil,
	}

	for _, record := range src.Sequence(resultsPath...) {
		if record.FlagSet(tree.AttrPrefix + "upgrade") {
			continue
		}
		switch record.Attr("houseCode") {
		case BucketSOC:
			m.results[BucketSOC] = append(m.results[BucketSOC], record)
		case BucketReference:
			m.results[BucketReference] = append(m.results[BucketReference], record)
		default:
			m.results[BucketGeneral] = append(m.results[BucketGeneral], record)
		}
	}
}

// Results returns the records for the named bucket. An empty bucket name
// selects the default: SOC, falling back to General when SOC is empty. An
// explicit name that matches no bucket yields an empty slice.
func (m *ModelData) Results(bucket string) []tree.Node {
	if bucket == "" {
		if len(m.results[BucketSOC]) > 0 {
			return append([]tree.Node(nil), m.results[BucketSOC]...)
		}
		return append([]tree.Node(nil), m.results[BucketGeneral]...)
	}
	return append([]tree.Node(nil), m.results[bucket]...)
}
