package serving

type locationDirectoryError struct {
	FullPath     string
	RelativePath string
}

func (l *locationDirectoryError) Error() string {
	return "location error accessing directory where file expected"
}
