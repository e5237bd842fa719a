//go:build !pointcloud

package meshing

// DefaultTopology returns the topology this binary was built for: CPU
// expanded boxes. Build with -tags pointcloud for the point variant.
func DefaultTopology(atlas *Atlas) Topology {
	return NewBox(atlas)
}
