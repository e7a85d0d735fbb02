package heatmap

import (
	"fmt"

	"github.com/huangsam/heatgate/schema"
)

// labelKey is a (key, partner) pair used to detect label collisions.
type labelKey struct {
	key     string
	partner string
}

// accessor reads and writes one label axis of a data point.
type accessor struct {
	get func(p *schema.DataPoint) string
	set func(p *schema.DataPoint, v string)
}

var (
	columnAxis = accessor{
		get: func(p *schema.DataPoint) string { return p.Column },
		set: func(p *schema.DataPoint, v string) { p.Column = v },
	}
	rowAxis = accessor{
		get: func(p *schema.DataPoint) string { return p.Row },
		set: func(p *schema.DataPoint, v string) { p.Row = v },
	}
)

// DeduplicateLabels renames colliding labels in place so that no two points share
// a (Row, Column) pair. Columns are disambiguated within a row first, then rows
// within a column. Later points get " (n)" appended, n counting earlier collisions
// of the same original label and partner.
func DeduplicateLabels(points []schema.DataPoint) {
	dedupAxis(points, columnAxis, rowAxis)
	dedupAxis(points, rowAxis, columnAxis)
}

func dedupAxis(points []schema.DataPoint, key, partner accessor) {
	seen := make(map[labelKey]struct{}, len(points))
	counters := make(map[labelKey]int)

	for i := range points {
		p := &points[i]
		original := key.get(p)
		other := partner.get(p)
		current := labelKey{key: original, partner: other}

		for {
			if _, dup := seen[current]; !dup {
				break
			}
			origin := labelKey{key: original, partner: other}
			counters[origin]++
			current.key = fmt.Sprintf("%s (%d)", original, counters[origin])
		}
		seen[current] = struct{}{}
		key.set(p, current.key)
	}
}
