package version

var version = "0.3.0"

// Version returns the herald release version.
func Version() string {
	return version
}
