package treedata

import (
	"fmt"

	"github.com/phanxgames/canopy"
)

// OrgChart returns the sample organisation: a CEO over one VP, 5
// directors, 20 managers, 50 leads and 100 staff. Ids are assigned bottom
// up, so staff are 1-100 and the CEO is 177.
func OrgChart() *canopy.Node {
	id := int64(1)
	mk := func(format string, i int, children []*canopy.Node) *canopy.Node {
		n := &canopy.Node{ID: id, Payload: fmt.Sprintf(format, i+1), Children: children}
		id++
		return n
	}

	staff := make([]*canopy.Node, 100)
	for i := range staff {
		staff[i] = mk("Staff %d", i, nil)
	}

	// Two staff per lead.
	leads := make([]*canopy.Node, 50)
	for i := range leads {
		leads[i] = mk("Lead %d", i, staff[i*2:(i+1)*2:(i+1)*2])
	}

	// The first ten managers have three leads, the rest two.
	managers := make([]*canopy.Node, 20)
	next := 0
	for i := range managers {
		count := 2
		if i < 10 {
			count = 3
		}
		managers[i] = mk("Manager %d", i, leads[next:next+count:next+count])
		next += count
	}

	directors := make([]*canopy.Node, 5)
	for i := range directors {
		directors[i] = mk("Director %d", i, managers[i*4:(i+1)*4:(i+1)*4])
	}

	vp := &canopy.Node{ID: id, Payload: "VP of Everything", Children: directors}
	id++
	return &canopy.Node{ID: id, Payload: "CEO", Children: []*canopy.Node{vp}}
}
