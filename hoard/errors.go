package hoard

import "errors"

var (
	// ErrBadMagic indicates the file does not start with the hoard magic.
	ErrBadMagic = errors.New("hoard: bad magic")

	// ErrVersion indicates an unsupported format version.
	ErrVersion = errors.New("hoard: unsupported version")

	// ErrFlavor indicates the file was created for a different flavor than
	// the one it is opened with.
	ErrFlavor = errors.New("hoard: flavor mismatch")

	// ErrTruncatedHeader indicates a file shorter than the header.
	ErrTruncatedHeader = errors.New("hoard: truncated header")

	// ErrTxActive indicates Begin was called while a transaction is open.
	ErrTxActive = errors.New("hoard: transaction already active")

	// ErrTxDone indicates use of a committed or rolled back transaction.
	ErrTxDone = errors.New("hoard: transaction finished")

	// ErrUnsizedRoot indicates a root whose size depends on metadata. Root
	// iteration locates roots by their fixed size, so they must be sized.
	ErrUnsizedRoot = errors.New("hoard: root type must be sized")

	// ErrRootPlacement indicates a root commit whose last blob is not the
	// root.
	ErrRootPlacement = errors.New("hoard: last blob is not the root")

	// ErrClosed indicates use of a closed hoard.
	ErrClosed = errors.New("hoard: closed")
)
