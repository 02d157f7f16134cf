package settings

import (
	"github.com/ValentinKolb/pSettings/lib/common"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ISettingsProvider reads and writes the settings of scope groups from a
// single settings file. Every call reloads the file, so any number of
// providers (in this or other processes) may share it.
// Implementations are safe for concurrent use, but concurrent writes to the
// same file follow a last writer wins policy.
type ISettingsProvider interface {
	// Name returns the name of the provider
	Name() string

	// Path returns the path of the backing settings file
	Path() string

	// Read returns one value per declaration, in the order of decls.
	// Settings that are not persisted, not stored or whose stored value cannot
	// be decoded are returned with their default value and UsingDefaultValue
	// set. No returned value is dirty. Read never fails.
	Read(group string, decls []common.Declaration) []common.SettingValue

	// Write stores all persisted values of a scope group and saves the file
	// once. Application scoped values are skipped. A value that cannot be
	// encoded is skipped and reported in the returned error, the remaining
	// values are still saved. A failure to save the file is logged but not
	// returned.
	Write(group string, values []common.SettingValue) error

	// Reset deletes the settings file. A missing file is not an error.
	Reset() error

	// GetPreviousVersion is not supported and always fails with
	// common.RetCNotSupported.
	GetPreviousVersion(group string, decl common.Declaration) (common.SettingValue, error)

	// Upgrade does nothing, the settings file has no versions.
	Upgrade(group string, decls []common.Declaration) error
}
