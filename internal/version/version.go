// Package version тримає build-time метадані бінарника.
// Значення підставляються через ldflags:
//
//	go build -ldflags "-X github.com/GabrielaCA88/ibitracker/internal/version.Version=v1.2.3"
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Current повертає версію застосунку ("dev" якщо не задана)
func Current() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Info повертає зведені build метадані для health endpoint
func Info() map[string]string {
	return map[string]string{
		"version":    Current(),
		"git_commit": GitCommit,
		"build_time": BuildTime,
	}
}
