package version

// Version is the current version of mkrun.
// This can be set at build time using:
//   go build -ldflags "-X github.com/mkrun-go/mkrun/version.Version=x.y.z"
var Version = "dev"
