package settings

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/puzpuzpuz/xsync/v3"
)

// Group is the host side of a scope group: a named set of declared settings
// and their current values. Values are loaded from the provider with Reload
// and written back with Save.
//
// A Group is safe for concurrent use. Get and Set never touch the settings
// file.
type Group struct {
	name   string
	decls  []common.Declaration
	values *xsync.MapOf[string, common.SettingValue]

	mu       sync.RWMutex
	provider ISettingsProvider
}

// NewGroup creates a scope group holding the default values of decls.
// If a name is declared more than once the last declaration wins.
func NewGroup(name string, decls ...common.Declaration) *Group {
	g := &Group{
		name:   name,
		values: xsync.NewMapOf[string, common.SettingValue](),
	}
	index := make(map[string]int)
	for _, decl := range decls {
		if i, exists := index[decl.Name]; exists {
			g.decls[i] = decl
		} else {
			index[decl.Name] = len(g.decls)
			g.decls = append(g.decls, decl)
		}
		g.values.Store(decl.Name, common.DefaultSettingValue(decl))
	}
	return g
}

// Name returns the name of the scope group
func (g *Group) Name() string {
	return g.name
}

// Declarations returns the declarations of the group in declaration order
func (g *Group) Declarations() []common.Declaration {
	return append([]common.Declaration(nil), g.decls...)
}

// SetProvider sets the provider used by Reload, Save and Reset
func (g *Group) SetProvider(p ISettingsProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.provider = p
}

// Provider returns the provider of the group, nil if none is set
func (g *Group) Provider() ISettingsProvider {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.provider
}

// Reload replaces all values with the ones stored by the provider.
// Without a provider all values are reset to their defaults.
func (g *Group) Reload() {
	p := g.Provider()
	if p == nil {
		for _, decl := range g.decls {
			g.values.Store(decl.Name, common.DefaultSettingValue(decl))
		}
		return
	}

	for _, v := range p.Read(g.name, g.decls) {
		g.values.Store(v.Name, v)
	}
}

// Get returns the current value of a setting
func (g *Group) Get(name string) (common.SettingValue, bool) {
	return g.values.Load(name)
}

// Set changes the value of a declared setting and marks it dirty
func (g *Group) Set(name string, serialized any) error {
	updated := false
	g.values.Compute(name, func(old common.SettingValue, loaded bool) (common.SettingValue, bool) {
		if !loaded {
			return old, true
		}
		updated = true
		return common.NewSettingValue(old.Declaration, serialized), false
	})
	if !updated {
		return common.NewError(common.RetCInvalidValue, fmt.Sprintf("setting %s is not declared in %s", name, g.name))
	}
	return nil
}

// IsDirty reports whether any value was changed since the last Reload or Save
func (g *Group) IsDirty() bool {
	dirty := false
	g.values.Range(func(_ string, v common.SettingValue) bool {
		dirty = v.IsDirty
		return !dirty
	})
	return dirty
}

// Save writes the values of the group to the provider and clears the dirty
// flags of the values that were written. Values still holding their
// unchanged default are not written, the default is not in stored form.
func (g *Group) Save() error {
	p := g.Provider()
	if p == nil {
		return common.NewError(common.RetCInternalError, fmt.Sprintf("no settings provider set for %s", g.name))
	}

	values := make([]common.SettingValue, 0, len(g.decls))
	for _, decl := range g.decls {
		v, ok := g.values.Load(decl.Name)
		if !ok || (v.UsingDefaultValue && !v.IsDirty) {
			continue
		}
		values = append(values, v)
	}

	err := p.Write(g.name, values)

	for _, v := range values {
		written := v
		g.values.Compute(v.Name, func(old common.SettingValue, loaded bool) (common.SettingValue, bool) {
			// keep values changed by a concurrent Set dirty
			if loaded && old.IsDirty && reflect.DeepEqual(old.SerializedValue, written.SerializedValue) {
				old.IsDirty = false
			}
			return old, !loaded
		})
	}
	return err
}

// Reset deletes the settings file of the provider and reloads all values,
// which are the defaults afterwards.
func (g *Group) Reset() error {
	p := g.Provider()
	if p == nil {
		return common.NewError(common.RetCInternalError, fmt.Sprintf("no settings provider set for %s", g.name))
	}
	if err := p.Reset(); err != nil {
		return err
	}
	g.Reload()
	return nil
}

// Apply sets provider as the provider of every group and reloads the groups
func Apply(provider ISettingsProvider, groups ...*Group) {
	for _, g := range groups {
		g.SetProvider(provider)
		g.Reload()
	}
}
