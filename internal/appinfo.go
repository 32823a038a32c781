package internal

// AppName is the name of this program.
const AppName = "identitystore"

// AppVersion is the build version string, overridden at link time with
// -ldflags "-X github.com/shirady/noobaa-core/identitystore/internal.AppVersion=...".
var AppVersion = "dev"
