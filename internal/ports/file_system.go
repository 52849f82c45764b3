package ports

type AccessMode int

const (
	ReadWrite AccessMode = iota
	ReadWriteExecute
	ReadAllWriteOwner
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, accessMode AccessMode) error
	EnsureDirExists(path string) error
	FileExists(path string) (bool, error)
	DirExists(path string) (bool, error)
	RemoveFile(path string) error
	// ListFiles returns the files below root whose extension is one of
	// extensions, as sorted slash-separated paths relative to root.
	ListFiles(root string, extensions []string) ([]string, error)
}
