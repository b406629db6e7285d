package geom

// Group is a name and an ordered sequence of point handles. Names are not
// required to be unique except for "all", which every World creates exactly
// once and keeps in sync with point creation/removal.
type Group struct {
	Name   string
	Points []PointHandle
}

func NewGroup(name string) Group {
	return Group{Name: name}
}

// AllGroupName is the name of the group every World maintains automatically.
const AllGroupName = "all"
