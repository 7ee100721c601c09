// Package mmfile maps hoard files read-only into memory.
//
// On unix systems the file is mapped with mmap(2) and unmapped by the
// returned release function. Elsewhere the file is read into memory and the
// release function does nothing.
package mmfile
