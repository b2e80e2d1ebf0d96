// Package version хранит сведения о сборке, задаваемые через -ldflags:
//
//	-X github.com/vladislavdragonenkov/windowcleaning/internal/version.version=v1.2.0
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

func GetVersion() string { return version }

func GetCommit() string { return commit }

func GetDate() string { return date }

// String форматирует сведения о сборке для логов и `wcsctl version`.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
