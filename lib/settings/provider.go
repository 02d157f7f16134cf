package settings

import (
	"fmt"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
	"github.com/ValentinKolb/pSettings/lib/document/jsondoc"
	"github.com/ValentinKolb/pSettings/lib/document/xmldoc"
	"github.com/ValentinKolb/pSettings/lib/scope"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

var Logger = logger.GetLogger(common.LoggerSettings)

// providerImpl implements ISettingsProvider on top of a document store
type providerImpl struct {
	name     string
	store    document.IDocumentStore
	resolver scope.Resolver
	metrics  *providerMetrics
}

// NewProvider creates a provider for the settings file described by conf.
// An empty file name selects the default file name of the format. If fs is
// nil the operating system's filesystem is used.
// The configuration is copied, changing it afterwards has no effect.
func NewProvider(conf common.Config, fs afero.Fs) (ISettingsProvider, error) {
	format, err := FormatByName(conf.Format)
	if err != nil {
		return nil, err
	}
	if conf.FileName == "" {
		conf.FileName = format.DefaultFileName()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	p := &providerImpl{
		name:     fmt.Sprintf("psettings-%s", format.Name()),
		store:    document.NewFileStore(fs, conf.Path(), format),
		resolver: scope.NewResolver(conf.AllRoaming, conf.MachineName),
		metrics:  newProviderMetrics(format.Name()),
	}
	Logger.Debugf("created provider %s for %s (machine %s, all roaming %t)", p.name, p.store.Path(), p.resolver.MachineName(), conf.AllRoaming)
	return p, nil
}

// NewProviderFromEnv loads the configuration from the environment (see
// common.LoadConfig), initializes the loggers and creates a provider on the
// operating system's filesystem.
func NewProviderFromEnv() (ISettingsProvider, error) {
	conf, err := common.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := common.InitLoggers(conf); err != nil {
		return nil, err
	}
	return NewProvider(conf, nil)
}

// FormatByName returns the document format with the given name
func FormatByName(name string) (document.Format, error) {
	switch name {
	case common.FormatJSON:
		return jsondoc.NewFormat(), nil
	case common.FormatXML:
		return xmldoc.NewFormat(), nil
	default:
		return nil, common.NewError(common.RetCInvalidValue, fmt.Sprintf("unknown settings format %q", name))
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see settings/interface.go)
// --------------------------------------------------------------------------

func (p *providerImpl) Name() string {
	return p.name
}

func (p *providerImpl) Path() string {
	return p.store.Path()
}

func (p *providerImpl) Read(group string, decls []common.Declaration) []common.SettingValue {
	p.metrics.reads.Inc()

	values := make([]common.SettingValue, 0, len(decls))
	if group == "" {
		Logger.Warningf("read of a scope group without name, using default values")
		for _, decl := range decls {
			values = append(values, common.DefaultSettingValue(decl))
		}
		return values
	}

	doc := p.store.Load()
	for _, decl := range decls {
		values = append(values, p.readValue(doc, group, decl))
	}
	Logger.Debugf("read %d settings of %s from %s", len(values), group, p.store.Path())
	return values
}

func (p *providerImpl) Write(group string, values []common.SettingValue) error {
	p.metrics.writes.Inc()

	if group == "" {
		return common.NewError(common.RetCInvalidValue, "scope group name must not be empty")
	}

	doc := p.store.Load()

	var errs error
	written := 0
	for _, v := range values {
		if !p.resolver.IsPersisted(v.Declaration) {
			continue
		}
		if err := p.writeValue(doc, group, v); err != nil {
			p.metrics.encodeFailures.Inc()
			Logger.Errorf("skipping setting %s of %s: %v", v.Name, group, err)
			errs = multierr.Append(errs, err)
			continue
		}
		written++
	}

	// a failed save loses the change but must never fail the host
	if err := p.store.Save(doc); err != nil {
		p.metrics.saveFailures.Inc()
		Logger.Warningf("settings of %s not persisted: %v", group, err)
	} else {
		Logger.Debugf("wrote %d settings of %s to %s", written, group, p.store.Path())
	}
	return errs
}

func (p *providerImpl) Reset() error {
	p.metrics.resets.Inc()
	if err := p.store.Reset(); err != nil {
		return err
	}
	Logger.Infof("deleted settings file %s", p.store.Path())
	return nil
}

func (p *providerImpl) GetPreviousVersion(group string, decl common.Declaration) (common.SettingValue, error) {
	return common.SettingValue{}, common.NewError(common.RetCNotSupported, fmt.Sprintf("previous version of %s/%s is not available", group, decl.Name))
}

func (p *providerImpl) Upgrade(group string, decls []common.Declaration) error {
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// readValue returns the stored value of a setting or its default
func (p *providerImpl) readValue(doc document.IDocument, group string, decl common.Declaration) common.SettingValue {
	if !p.resolver.IsPersisted(decl) || decl.Name == "" {
		return common.DefaultSettingValue(decl)
	}

	branch := p.resolver.LocationBranch(decl)
	stored, found, err := doc.Lookup(branch, group, decl.Name)
	if err == nil && !found {
		return common.DefaultSettingValue(decl)
	}

	var value any
	if err == nil {
		value, err = codec.Decode(decl.SerializeAs, stored)
	}
	if err != nil {
		p.metrics.decodeFailures.Inc()
		Logger.Warningf("cannot decode %s/%s/%s, using default value: %v", branch, group, decl.Name, err)
		return common.DefaultSettingValue(decl)
	}

	return common.SettingValue{
		Declaration:     decl,
		SerializedValue: value,
	}
}

// writeValue encodes a value and stores it in the document
func (p *providerImpl) writeValue(doc document.IDocument, group string, v common.SettingValue) error {
	if v.Name == "" {
		return common.NewError(common.RetCInvalidValue, fmt.Sprintf("setting of %s without name", group))
	}
	stored, err := codec.Encode(v.SerializeAs, v.SerializedValue)
	if err != nil {
		return errors.WithMessagef(err, "setting %s/%s", group, v.Name)
	}
	doc.Upsert(p.resolver.LocationBranch(v.Declaration), group, v.Name, stored)
	return nil
}
