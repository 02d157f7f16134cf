package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var Logger = logger.GetLogger(common.LoggerDocument)

const (
	filePerm = 0644
	dirPerm  = 0755
)

type fileStoreImpl struct {
	fs     afero.Fs
	path   string
	format Format

	parseFailures *metrics.Counter
}

// NewFileStore creates a document store backed by the file at path.
// If fs is nil the operating system's filesystem is used.
func NewFileStore(fs afero.Fs, path string, format Format) IDocumentStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &fileStoreImpl{
		fs:            fs,
		path:          path,
		format:        format,
		parseFailures: metrics.GetOrCreateCounter(fmt.Sprintf(`psettings_parse_failures_total{format=%q}`, format.Name())),
	}
}

// nextPath is the temporary file a document is written to before it replaces the current file
func (s *fileStoreImpl) nextPath() string { return s.path + ".tmp" }

// --------------------------------------------------------------------------
// Interface Methods (docu see document/interface.go)
// --------------------------------------------------------------------------

func (s *fileStoreImpl) Load() IDocument {
	// the file may be shared with other providers, so it is read on every call
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.format.New()
	} else if err != nil {
		Logger.Warningf("cannot read %s, using a new document: %v", s.path, err)
		return s.format.New()
	}

	doc, err := s.format.Parse(data)
	if err != nil {
		s.parseFailures.Inc()
		Logger.Warningf("cannot parse %s, using a new document: %v", s.path, err)
		return s.format.New()
	}
	return doc
}

func (s *fileStoreImpl) Save(doc IDocument) error {
	data, err := doc.Marshal()
	if err != nil {
		return common.WrapError(common.RetCInternalError, err, "marshal settings document")
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err = s.fs.MkdirAll(dir, dirPerm); err != nil {
			return common.WrapError(common.RetCIOError, errors.WithMessage(err, "creating settings directory"), s.path)
		}
	}

	// Write the complete document to a temporary file and move it to the
	// well-known location afterwards, so a failed write never leaves a
	// truncated settings file behind.
	if err = afero.WriteFile(s.fs, s.nextPath(), data, filePerm); err != nil {
		err = errors.WithMessage(err, "writing settings file")
	} else if err = s.fs.Rename(s.nextPath(), s.path); err != nil {
		err = errors.WithMessage(err, "renaming next => current")
	}

	if err != nil {
		_ = s.fs.Remove(s.nextPath())
		return common.WrapError(common.RetCIOError, err, s.path)
	}
	return nil
}

func (s *fileStoreImpl) Reset() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return common.WrapError(common.RetCIOError, errors.WithMessage(err, "deleting settings file"), s.path)
	}
	return nil
}

func (s *fileStoreImpl) Path() string {
	return s.path
}

func (s *fileStoreImpl) Format() Format {
	return s.format
}
