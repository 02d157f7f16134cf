package scope

import (
	"os"
	"strings"

	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
)

const (
	// MachineBranchPrefix prefixes the machine name in the name of a machine branch
	MachineBranchPrefix = "PC_"

	fallbackMachineName = "localhost"
)

// Resolver decides whether and where a declared setting is persisted.
// The zero value stores non roaming settings under the branch "PC_".
type Resolver struct {
	allRoaming  bool
	machineName string
}

// NewResolver creates a resolver. If allRoaming is set every persisted
// setting is placed in the roaming branch. An empty machineName selects
// the local machine name.
func NewResolver(allRoaming bool, machineName string) Resolver {
	if machineName == "" {
		machineName = LocalMachineName()
	}
	return Resolver{
		allRoaming:  allRoaming,
		machineName: machineName,
	}
}

// IsPersisted reports whether a setting is stored in the document at all.
// Only user scoped settings are.
func (r Resolver) IsPersisted(decl common.Declaration) bool {
	return decl.IsUserScoped
}

// IsRoaming reports whether a setting belongs to the roaming branch
func (r Resolver) IsRoaming(decl common.Declaration) bool {
	return r.allRoaming || decl.IsRoaming
}

// LocationBranch returns the branch a setting is stored in
func (r Resolver) LocationBranch(decl common.Declaration) string {
	if r.IsRoaming(decl) {
		return document.RoamingBranch
	}
	return MachineBranch(r.machineName)
}

// MachineName returns the machine name used for the machine branch
func (r Resolver) MachineName() string {
	return r.machineName
}

// MachineBranch returns the name of the branch holding the settings of a machine
func MachineBranch(machineName string) string {
	return MachineBranchPrefix + machineName
}

// LocalMachineName returns the host name of the local machine without its
// domain part, or "localhost" if it cannot be determined.
func LocalMachineName() string {
	host, err := os.Hostname()
	if err != nil {
		return fallbackMachineName
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	if host == "" {
		return fallbackMachineName
	}
	return host
}
