//go:build pointcloud

package meshing

// DefaultTopology returns the topology this binary was built for: one point
// per cell, expanded by a geometry shader.
func DefaultTopology(atlas *Atlas) Topology {
	return Point{}
}
