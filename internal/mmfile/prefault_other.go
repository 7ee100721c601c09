//go:build !linux

package mmfile

// PreFault faults in every page of a mapping so that inaccessible regions
// surface as an error instead of a fault on first access.
func PreFault(data []byte) error {
	return touch(data)
}
